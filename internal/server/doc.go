// Package server provides HTTP routing, middleware, and the development proxy for the album frontend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering, so routes may use
// wildcards ("/albums/{id}") and the "{$}" exact-match suffix.
//
// # Middleware
//
//   - [RequestID] reuses or generates an X-Request-ID and stores it on the request context
//   - [Logging] writes one structured line per request
//   - [Recover] turns handler panics into 500 responses
//
// # Dev Proxy
//
// [DevProxy] forwards backend prefixes (by default /api and /media) to the album backend, rewriting the Host
// header to the target's. It is only mounted when the server runs with the dev proxy enabled, so a browser
// talking to the frontend origin can also reach the backend.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
