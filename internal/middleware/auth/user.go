package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserIDHeader carries the caller's user ID when the request comes through
// the platform gateway, which has already authenticated it.
const UserIDHeader = "X-User-ID"

const userIDContextKey = "user_id"

// Config holds the configuration for the user identification middleware
type Config struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string
}

// Middleware resolves the calling user. A Bearer token is validated and its
// subject claim becomes the user ID; otherwise the gateway-set X-User-ID
// header is trusted. Requests with neither are rejected.
func Middleware(config Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				userID, err := userIDFromToken(authHeader, config.Secret)
				if err != nil {
					config.Logger.Warn("JWT validation failed",
						zap.String("path", path),
						zap.Error(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Invalid or expired token",
						"code":  "INVALID_TOKEN",
					})
				}
				c.Set(userIDContextKey, userID)
				return next(c)
			}

			if userID := c.Request().Header.Get(UserIDHeader); userID != "" {
				c.Set(userIDContextKey, userID)
				return next(c)
			}

			config.Logger.Warn("Unauthenticated request",
				zap.String("path", path),
				zap.String("method", c.Request().Method))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Authentication required",
				"code":  "AUTH_REQUIRED",
			})
		}
	}
}

func userIDFromToken(authHeader, secret string) (string, error) {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", fmt.Errorf("invalid authorization header format")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return sub, nil
}

// UserID returns the authenticated user ID set by the middleware
func UserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
