package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"Checklist/Models"
)

const (
	CookieName = "jwt"
	sessionKey = "session"
)

var ErrNotLoggedIn = errors.New("not logged in")

// SessionClaims carries the observer and supervisor names in the token.
type SessionClaims struct {
	Models.Session
	jwt.RegisteredClaims
}

// IssueToken signs a session token valid for ttl from now.
func IssueToken(s *Models.Session, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Session: *s,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Observer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}
	return token, nil
}

// ParseToken verifies a session token and returns the session it carries.
func ParseToken(token, secret string) (*Models.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	s, err := Models.NewSession(claims.Observer, claims.Supervisor)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Verify rejects requests without a valid session cookie and stores the
// session for the handlers.
func Verify(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(CookieName)
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		session, err := ParseToken(cookie, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// CurrentSession returns the session stored by Verify.
func CurrentSession(c *fiber.Ctx) (*Models.Session, error) {
	s, ok := c.Locals(sessionKey).(*Models.Session)
	if !ok || s == nil {
		return nil, ErrNotLoggedIn
	}
	return s, nil
}
