package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports input that breaks a business rule.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// LookupError reports a referenced entity that does not exist.
type LookupError struct {
	Entity string
	ID     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("invalid %s ID: %s", e.Entity, e.ID)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsLookup(err error) bool {
	var l *LookupError
	return errors.As(err, &l)
}
