// Package errs defines the error types returned to API clients.
//
// Every failure the service reports (validation, missing references,
// duplicate keys, missing records, internal faults) is expressed as an
// *HTTPError so the client receives a consistent JSON shape.
package errs
