package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/service"
)

// AmenitiesHandler exposes /amenities.
type AmenitiesHandler struct {
	amenities *service.AmenityService
}

func NewAmenitiesHandler(amenities *service.AmenityService) *AmenitiesHandler {
	return &AmenitiesHandler{amenities: amenities}
}

func (h *AmenitiesHandler) List(c *fiber.Ctx) error {
	amenities, err := h.amenities.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(amenities)
}

func (h *AmenitiesHandler) Get(c *fiber.Ctx) error {
	amenity, err := h.amenities.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(amenity)
}

func (h *AmenitiesHandler) Create(c *fiber.Ctx) error {
	var input domain.AmenityInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	amenity, err := h.amenities.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return created(c, amenity)
}

func (h *AmenitiesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAmenityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	amenity, err := h.amenities.Update(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(amenity)
}

func (h *AmenitiesHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.amenities.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return deleted(c, msg)
}
