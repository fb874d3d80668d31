// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, CORS, rate limiting, New Relic tracing,
// panic recovery and the global error response.
package middleware
