package middleware

import (
	"net/http"
	"strings"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys under which the authenticated caller is stored.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := m.actorFromHeader(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		c.Set(ContextKeyUserID, actor.ID)
		c.Set(ContextKeyRole, actor.Role)

		return next(c)
	}
}

// OptionalAuthenticate resolves the caller when a valid bearer token is
// presented but lets anonymous requests through untouched.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		actor, err := m.actorFromHeader(c)
		if err != nil {
			// A malformed token on an optional route is still rejected,
			// silently downgrading it would mask client bugs.
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		c.Set(ContextKeyUserID, actor.ID)
		c.Set(ContextKeyRole, actor.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the caller has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + string(requiredRole) + "' role"})
			}

			return next(c)
		}
	}
}

// ActorFrom rebuilds the authenticated caller stored by Authenticate.
// The second return is false on anonymous requests.
func ActorFrom(c echo.Context) (*usecase.Actor, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	if !ok {
		return nil, false
	}
	role, ok := c.Get(ContextKeyRole).(entity.Role)
	if !ok {
		return nil, false
	}

	return &usecase.Actor{ID: userID, Role: role}, true
}

func (m *AuthMiddleware) actorFromHeader(c echo.Context) (*usecase.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errAuthHeaderMissing
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errTokenFormat
	}

	token, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil || !token.Valid {
		return nil, errTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errTokenClaims
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errTokenSubject
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errTokenSubject
	}

	roleStr, _ := claims["role"].(string)
	role, ok := entity.RoleFromString(roleStr)
	if !ok {
		return nil, errTokenRole
	}

	return &usecase.Actor{ID: userID, Role: role}, nil
}

var (
	errAuthHeaderMissing = errors.New("Authorization header is missing")
	errTokenFormat       = errors.New("Invalid token format, must be Bearer token")
	errTokenInvalid      = errors.New("Invalid or expired token")
	errTokenClaims       = errors.New("Failed to parse token claims")
	errTokenSubject      = errors.New("User ID missing from token")
	errTokenRole         = errors.New("Role missing from token")
)
