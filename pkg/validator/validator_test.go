package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	RoomCode string `validate:"required,min=2,max=20"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Purpose  string `validate:"required,min=5"`
}

func TestFieldErrors(t *testing.T) {
	v := validator.New()

	err := v.Struct(bookingForm{Date: "12-03-2026", Purpose: "talk"})
	require.Error(t, err)

	messages := FieldErrors(err)
	assert.Contains(t, messages, "Room code is required")
	assert.Contains(t, messages, "Date has an invalid date format")
	assert.Contains(t, messages, "Purpose must be at least 5 characters")
}

func TestFieldErrorsPlainError(t *testing.T) {
	messages := FieldErrors(errors.New("unexpected EOF"))
	assert.Equal(t, []string{"unexpected EOF"}, messages)
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(bookingForm{RoomCode: "B201", Date: "2026-03-12", Purpose: "x"})
	require.Error(t, err)

	assert.Equal(t, "Purpose must be at least 5 characters", FormatValidationError(err))
}
