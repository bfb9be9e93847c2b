package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "domain error passes through",
			err:        NewForbidden("You can only update your own account"),
			wantCode:   CodeForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "You can only update your own account",
		},
		{
			name:       "wrapped domain error is unwrapped",
			err:        fmt.Errorf("create booking: %w", NewNotFound("User", nil)),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:       "fiber not found",
			err:        fiber.ErrNotFound,
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    fiber.ErrNotFound.Message,
		},
		{
			name:       "fiber bad request",
			err:        fiber.NewError(http.StatusBadRequest, "invalid payload"),
			wantCode:   CodeValidation,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid payload",
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pq: connection reset by peer"),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeInternal))
}
