// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate checks decoded request bodies on the van API and reports
// every problem at once as a single VALIDATION_ERROR.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body is not the JSON we expect.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field problems for one request body. Rules chain:
//
//	v := &validate.Validator{}
//	v.Required("email", in.Email).MaxLen("email", in.Email, 254)
//	if err := v.Err(); err != nil { ... }
type Validator struct {
	problems []apperr.FieldError
}

// Check records message against field unless ok holds.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.problems = append(v.problems, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required rejects blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "This field is required")
}

// MaxLen rejects values longer than max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Check(utf8.RuneCountInString(value) <= max, field, fmt.Sprintf("Maximum %d characters", max))
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.problems...)
}
