package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/auth"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// actor returns the authenticated caller, or nil on public routes.
func actor(c *fiber.Ctx) *auth.Principal {
	p, _ := auth.PrincipalFromContext(c)
	return p
}

func created(c *fiber.Ctx, body any) error {
	return c.Status(http.StatusCreated).JSON(body)
}

func deleted(c *fiber.Ctx, message string) error {
	return c.JSON(dto.DeleteResponse{Message: message})
}
