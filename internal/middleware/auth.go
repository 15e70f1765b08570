package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: userLocal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// AdminTokenOrJWT lets a matching X-Admin-Token through without a bearer token
// and falls back to JWTProtected otherwise.
func AdminTokenOrJWT(cfg *config.Config) fiber.Handler {
	jwtHandler := JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && validAdminToken(c.Get("X-Admin-Token"), cfg.AdminToken) {
			c.Locals(adminTokenLocal, true)
			return c.Next()
		}
		return jwtHandler(c)
	}
}

func validAdminToken(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
