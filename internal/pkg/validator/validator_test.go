package validator

import (
	"testing"

	"equiplend/internal/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name      string `validate:"required"`
	Condition string `validate:"required,oneof=new good fair poor"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "Camera", Condition: "good"}))

	errs := Validate(sample{Condition: "broken"})
	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "oneof", errs["Condition"])
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Name: "Camera", Condition: "fair"}))

	err := Check(sample{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Condition=required")
	assert.Contains(t, err.Error(), "Name=required")
}
