package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
)

// Identity is the verified caller, reconstructed from token claims.
// Handlers trust it as the sole source of the owner id.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

const identityKey = "identity"

// bearerAuth guards the task routes. It extracts the bearer token from the
// Authorization header and verifies it locally, without any database access.
// No extractable bearer token (absent header, wrong scheme, empty token) is
// the missing-token case; a token that is present but fails verification is
// the invalid-token case.
func (s *HTTPServer) bearerAuth(c *fiber.Ctx) error {

	parts := strings.SplitN(c.Get(common.AuthorizationHeaderName), " ", 2)
	if len(parts) != 2 || parts[0] != common.BearerSchema || parts[1] == "" {
		return respondError(c, fiber.StatusUnauthorized, codeMissingToken, common.ErrMissingToken.Error())
	}

	claims, err := auth.ParseToken(parts[1], s.jwtSecret)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	c.Locals(identityKey, &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	})

	return c.Next()
}

func identityFromCtx(c *fiber.Ctx) *Identity {
	identity, ok := c.Locals(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
