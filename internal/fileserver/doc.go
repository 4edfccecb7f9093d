// Package fileserver implements the request pipeline of a static file
// server: path resolution, media-type and cache-policy selection, lazy
// minification, lazy content-encoding compression, conditional-request
// short-circuiting, ETag materialization and response assembly.
//
// The package knows nothing about how it is invoked over the wire — it
// consumes a Request envelope and produces a Response envelope, leaving
// the HTTP listener loop, daemonization and access logging to the
// caller (see internal/server).
package fileserver
