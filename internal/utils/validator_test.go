// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordPayload struct {
	Password string `validate:"strong_password"`
}

type colorPayload struct {
	Color string `validate:"hex_color"`
}

type reasonPayload struct {
	Reason string `validate:"required,not_blank"`
}

func TestStrongPasswordValidator(t *testing.T) {
	valid := []string{"Abcdef1!", "Sup3r$ecret", "P4ssword#"}
	for _, p := range valid {
		err := ValidateStruct(&passwordPayload{Password: p})
		assert.NoError(t, err, "password %q should be accepted", p)
	}

	invalid := []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoNumbers!", "NoSpecials1"}
	for _, p := range invalid {
		err := ValidateStruct(&passwordPayload{Password: p})
		assert.Error(t, err, "password %q should be rejected", p)
	}
}

func TestHexColorValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&colorPayload{Color: "#3b82f6"}))
	assert.NoError(t, ValidateStruct(&colorPayload{Color: "#FFFFFF"}))

	for _, c := range []string{"3b82f6", "#fff", "#3b82f", "#3b82fg", "red", ""} {
		assert.Error(t, ValidateStruct(&colorPayload{Color: c}), "color %q should be rejected", c)
	}
}

func TestNotBlankValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&reasonPayload{Reason: "missing terms page"}))

	assert.Error(t, ValidateStruct(&reasonPayload{Reason: ""}))
	assert.Error(t, ValidateStruct(&reasonPayload{Reason: "   "}))
	assert.Error(t, ValidateStruct(&reasonPayload{Reason: "\t\n"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&reasonPayload{Reason: "  "})
	errs := GetValidationErrors(err)

	assert.Len(t, errs, 1)
	assert.Equal(t, "reason", errs[0].Field)
	assert.Equal(t, "not_blank", errs[0].Tag)
	assert.NotEmpty(t, errs[0].Message)
}
