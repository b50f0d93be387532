package common

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

// Message joins the field messages in field order, e.g. "content: must be provided; title: must be provided".
// A single error stored under the "message" key is returned as is.
func (e ValidationError) Message() string {
	if msg, ok := e.Errors["message"]; ok && len(e.Errors) == 1 {
		return msg
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Errors[field])
	}

	return strings.Join(parts, "; ")
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckStringLength counts runes, not bytes.
func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}

// NewValidationError builds a ValidationError carrying a single preformatted message.
func NewValidationError(message string) error {
	return ValidationError{Errors: map[string]string{"message": message}}
}

func PermittedValue[T comparable](value T, permitted ...T) bool {
	for _, p := range permitted {
		if value == p {
			return true
		}
	}
	return false
}
