package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFilter reports malformed or out-of-range query input,
	// rejected before any store access.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrPeriodNotFound reports a billing period reference that resolves to
	// no calendar window. Queries degrade to an unscoped time range instead
	// of failing.
	ErrPeriodNotFound = errors.New("billing period not found")
)

// DateLayout is the wire format for filter dates.
const DateLayout = "2006-01-02"

// Filter enumerates every recognized query field. Unknown fields are
// rejected at the HTTP boundary, so this struct is the whole filtering
// contract.
type Filter struct {
	// Categorical filters; empty string (or nil) means "any".
	FurnitureType string
	Digital       *bool
	Municipality  string
	State         string
	Plaza         string
	Tier          string

	// Status restricts breakdowns and detail listings to one resolved
	// status ("available", "reserved", "sold", "blocked").
	Status string

	// Time scope: either an explicit StartDate/EndDate pair or a billing
	// period reference. Explicit dates win when both are present.
	PeriodID  int
	StartDate time.Time
	EndDate   time.Time
}

// Validate rejects out-of-range filter values. Parse failures (unparseable
// dates, non-numeric ids) are caught earlier, at the HTTP boundary.
func (f Filter) Validate() error {
	if f.Status != "" {
		if _, ok := ParseStatus(f.Status); !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, f.Status)
		}
	}
	if f.PeriodID < 0 {
		return fmt.Errorf("%w: negative billing period id", ErrInvalidFilter)
	}
	if f.StartDate.IsZero() != f.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end date must be given together", ErrInvalidFilter)
	}
	if !f.StartDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidFilter)
	}
	return nil
}

// statusFilter returns the resolved-status restriction, or nil for none.
// Call only after Validate.
func (f Filter) statusFilter() *Status {
	if f.Status == "" {
		return nil
	}
	s, _ := ParseStatus(f.Status)
	return &s
}

// CacheKey serializes the normalized filter into a deterministic key
// fragment. Every field appears in a fixed order, so two equal filters
// always produce the same key and two differing filters never collide.
func (f Filter) CacheKey() string {
	var b strings.Builder

	digital := ""
	if f.Digital != nil {
		digital = strconv.FormatBool(*f.Digital)
	}
	dates := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	}

	b.WriteString("type=" + f.FurnitureType)
	b.WriteString("|digital=" + digital)
	b.WriteString("|municipality=" + f.Municipality)
	b.WriteString("|state=" + f.State)
	b.WriteString("|plaza=" + f.Plaza)
	b.WriteString("|tier=" + f.Tier)
	b.WriteString("|status=" + f.Status)
	b.WriteString("|period=" + strconv.Itoa(f.PeriodID))
	b.WriteString("|start=" + dates(f.StartDate))
	b.WriteString("|end=" + dates(f.EndDate))

	return b.String()
}
