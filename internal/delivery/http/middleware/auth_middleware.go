package middleware

import (
	"net/http"
	"strings"

	"foodflex/config"
	"foodflex/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// principalContextKey is the echo context key the authenticated principal is stored under.
const principalContextKey = "principal"

// AuthMiddleware provides middleware for JWT authentication and authorization.
// Identity issuance lives outside this service; we only validate tokens signed
// with the shared access secret and project their claims onto a Principal.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format, must be Bearer token")
		}

		principal, err := m.parsePrincipal(tokenString)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set(principalContextKey, principal)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the principal has a
// specific role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(principalContextKey).(*entity.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Permission denied: principal missing")
			}

			if principal.Role != requiredRole {
				return echo.NewHTTPError(http.StatusForbidden, "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// PrincipalFrom extracts the authenticated principal set by Authenticate.
func PrincipalFrom(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(principalContextKey).(*entity.Principal)

	return principal, ok
}

func (m *AuthMiddleware) parsePrincipal(tokenString string) (*entity.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(m.cfg.SecretKey.Access), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(err, "failed to validate token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse token claims")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("user ID missing from token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID format in token")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("role missing from token")
	}
	role, ok := entity.RoleFromString(roleStr)
	if !ok {
		return nil, errors.Errorf("unknown role: %s", roleStr)
	}

	return &entity.Principal{ID: userID, Role: role}, nil
}
