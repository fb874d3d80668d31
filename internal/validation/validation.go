// Package validation binds and validates request payloads.
//
// Rules are declared with `validate` struct tags (go-playground/validator)
// and failures are turned into per-field errors keyed by JSON field name.
package validation
