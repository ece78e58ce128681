// Package middleware groups the HTTP middleware used by the server.
//
// # Sub-packages
//
//   - rayid: assigns a unique request id (RayID) to every request so log
//     entries across a request can be correlated.
//   - auth: protects the API behind a shared API key.
//
// Middleware order matters: rayid runs first so the request logger and the
// auth rejection logs both carry the id.
package middleware
