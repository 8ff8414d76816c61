package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roomlet/payment-service/internal/middleware/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func run(t *testing.T, setup func(*http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/user/u1", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved string
	mw := auth.Middleware(auth.Config{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/api/v1/payments/health"},
	})
	handler := mw(func(c echo.Context) error {
		userID, _ := auth.UserID(c)
		resolved = userID
		return c.NoContent(http.StatusOK)
	})

	_ = handler(c)
	return rec, resolved
}

func TestMiddleware_BearerToken(t *testing.T) {
	t.Run("valid token resolves subject as user id", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec, userID := run(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", userID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		rec, _ := run(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with wrong secret is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": "u1"})

		rec, _ := run(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without subject is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec, _ := run(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		rec, _ := run(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddleware_GatewayHeader(t *testing.T) {
	t.Run("X-User-ID header resolves user", func(t *testing.T) {
		rec, userID := run(t, func(req *http.Request) {
			req.Header.Set(auth.UserIDHeader, "u42")
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u42", userID)
	})

	t.Run("request without identity is rejected", func(t *testing.T) {
		rec, _ := run(t, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddleware_SkipPaths(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := auth.Middleware(auth.Config{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/api/v1/payments/health"},
	})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
