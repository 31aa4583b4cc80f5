package handler

import (
	"errors"
	"fmt"
	"strings"

	"communityhub/internal/pkg"

	"github.com/go-playground/validator/v10"
)

// bindingErrors turns a ShouldBindJSON failure into per-field errors with
// accurate messages instead of one generic "invalid input".
func bindingErrors(err error) []pkg.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []pkg.FieldError{{
			Message: "Malformed request body.",
			Code:    pkg.CodeInvalidInput,
		}}
	}

	out := make([]pkg.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, pkg.FieldError{
			Param:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
			Code:    pkg.CodeInvalidInput,
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := capitalize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "min":
		return fmt.Sprintf("%s should be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s should be at most %s characters.", field, fe.Param())
	case "email":
		return "Email should be a valid email address."
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
