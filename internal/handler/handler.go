// Package handler is the HTTP layer.
//
// It binds requests, validates them through the validation package,
// calls the service layer and maps results to response bodies.
package handler
