package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the HTTP header carrying the ray id.
const Header = "X-Ray-ID"

// New returns middleware that assigns a ray id to every request.
// An id supplied by the caller is kept so traces can span services;
// otherwise a fresh UUID is generated. The id is stored in the request
// locals under "ray_id" and echoed back in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
