// Package server hosts the Fiber HTTP service that exposes
// internal/fileserver's Core over the network: request-ID and recover
// middleware, Host-based directory resolution for --vhost-mode, and
// the adapter that translates between fiber.Ctx and the core's
// Request/Response envelopes.
package server
