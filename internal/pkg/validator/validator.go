package validator

import (
	"fmt"
	"sort"
	"strings"

	"equiplend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// Check validates v and folds any field failures into a domain validation
// error.
func Check(v interface{}) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+"="+tag)
	}
	sort.Strings(parts)
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(parts, ", "))
}
