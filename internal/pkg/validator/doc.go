// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Use cases depend on the Validator interface so validation rules stay
// declarative (struct tags) and testable. The concrete implementation wraps
// go-playground/validator v10 with English translations.
package validator
