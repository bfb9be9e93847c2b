package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// newProbeApp mounts the middleware in front of a handler that records whether it ran.
func newProbeApp(t *testing.T, tm *TokenManager) (*fiber.App, *bool) {
	t.Helper()

	reached := false
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "message": de.Message})
		},
	})
	app.Get("/protected", NewAuthMiddleware(tm).Handle, func(c *fiber.Ctx) error {
		reached = true
		p, ok := PrincipalFromContext(c)
		if !ok {
			return errors.New("principal missing")
		}
		return c.JSON(fiber.Map{"userId": p.UserID, "username": p.Username})
	})
	return app, &reached
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	issuer := NewTokenManager(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt)))
	valid, expiresAt, err := issuer.Issue("user-7", "jdoe")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		now        time.Time
		wantStatus int
		wantCode   string
		wantReach  bool
	}{
		{name: "missing header", now: issuedAt, wantStatus: http.StatusUnauthorized, wantCode: apperrors.CodeMissingCredential},
		{name: "bearer without token", header: "Bearer ", now: issuedAt, wantStatus: http.StatusUnauthorized, wantCode: apperrors.CodeMissingCredential},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", now: issuedAt, wantStatus: http.StatusUnauthorized, wantCode: apperrors.CodeInvalidToken},
		{name: "malformed token", header: "Bearer not-a-jwt", now: issuedAt, wantStatus: http.StatusUnauthorized, wantCode: apperrors.CodeInvalidToken},
		{name: "expired token", header: "Bearer " + valid, now: expiresAt, wantStatus: http.StatusUnauthorized, wantCode: apperrors.CodeInvalidToken},
		{name: "valid token", header: "Bearer " + valid, now: issuedAt.Add(time.Hour), wantStatus: http.StatusOK, wantReach: true},
		{name: "lowercase scheme", header: "bearer " + valid, now: issuedAt, wantStatus: http.StatusOK, wantReach: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, reached := newProbeApp(t, NewTokenManager(testSecret, DefaultTokenTTL, WithClock(fixedClock(tt.now))))
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantReach, *reached)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantReach {
				assert.Equal(t, "user-7", body["userId"])
				assert.Equal(t, "jdoe", body["username"])
				return
			}
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestEnsureSelf(t *testing.T) {
	t.Parallel()

	p := &Principal{UserID: "7", Username: "jdoe"}

	assert.NoError(t, EnsureSelf(p, "7", "update"))

	err := EnsureSelf(p, "42", "update")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, "You can only update your own account", de.Message)

	err = EnsureSelf(p, "42", "delete")
	assert.Equal(t, "You can only delete your own account", apperrors.ToDomainError(err).Message)

	err = EnsureSelf(nil, "7", "delete")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMissingCredential))
}
