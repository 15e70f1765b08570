package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userLocal       = "user"
	adminTokenLocal = "admin_token"
)

// UserID extracts the user UUID from the JWT claims stored by JWTProtected.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func claimsFrom(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals(userLocal).(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
