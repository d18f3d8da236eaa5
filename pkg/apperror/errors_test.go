package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("booking not found"), http.StatusNotFound},
		{"forbidden", Forbidden("no access"), http.StatusForbidden},
		{"validation", Validation("bad time"), http.StatusBadRequest},
		{"conflict maps to bad request", Conflict("slot taken"), http.StatusBadRequest},
		{"rate limited", New(http.StatusTooManyRequests, "slow down", ErrRateLimited), http.StatusTooManyRequests},
		{"bare sentinel unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"unknown error is internal", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Conflict("room is already booked")

	assert.Equal(t, "room is already booked", err.Error())
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)

	wrapped := fmt.Errorf("create booking: %w", err)
	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatus(wrapped))
}
