package http

import (
	"fmt"
	"net/http"
	"strings"

	"textile/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// ActorMiddleware identifies the caller for the audit trail. A bearer token is
// optional; when present it must be an HS256 token signed with secret and its
// subject becomes the actor. Requests without a token act as the default actor.
func ActorMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "Authorization header must be 'Bearer <token>'")
			}

			subject, err := parseSubject(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			c.Set(actorKey, subject)
			return next(c)
		}
	}
}

func parseSubject(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return subject, nil
}

// actorFrom returns the authenticated subject, or "" for anonymous requests.
// Commands substitute the default actor for "".
func actorFrom(c echo.Context) string {
	actor, _ := c.Get(actorKey).(string)
	return actor
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
