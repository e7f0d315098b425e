package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"kitchensaver/internal/model"
)

// ContextKey is the echo context key the decoded claims are stored under.
const ContextKey = "user"

// GateResponse is the JSON body written when the gate rejects a request.
type GateResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Middleware returns the authorization gate: it extracts the bearer
// token, verifies it with the codec and attaches the decoded claims to
// the request context. A missing header and a bad token produce
// distinct 401 bodies; role checks are layered on with RequireRoles.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, GateResponse{
					Status:  http.StatusUnauthorized,
					Message: "Access Denied: Token not available",
				})
			}
			return c.JSON(http.StatusUnauthorized, GateResponse{
				Status:  http.StatusUnauthorized,
				Message: "Invalid token",
			})
		},
	})
}

// RequireRoles allows the request through only when the authenticated
// caller's role is in the given set. Must run after Middleware.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := FromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, GateResponse{
					Status:  http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}
			if _, ok := allowed[claims.Role]; !ok {
				return c.JSON(http.StatusForbidden, GateResponse{
					Status:  http.StatusForbidden,
					Message: "Access Denied: Insufficient role",
				})
			}
			return next(c)
		}
	}
}

// FromContext reads the claims the gate attached to the request.
func FromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok
}
