// Package middleware provides HTTP middleware for the local app host.
//
// # Available Middleware
//
//   - RequestID: tags each request with an X-Request-ID
//   - Logger: structured request logging through slog
//   - Recovery: turns handler panics into a Problem Details 500
//   - CORS: allows the browser UI origin to call the host
//   - Compress: gzip responses, skipping event streams
//
// Every middleware has the func(http.Handler) http.Handler shape, so it can
// be passed straight to a chi router's Use.
package middleware
