// Package service contains the business rules.
//
// It sits between the handler and repository layers: it receives
// validated requests, resolves references, calls the repositories and
// translates persistence failures into client-facing errors.
package service
