package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/service"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// PropertiesHandler exposes /properties.
type PropertiesHandler struct {
	properties *service.PropertyService
}

func NewPropertiesHandler(properties *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: properties}
}

// List handles GET /properties?location=&pricePerNight=&amenities=.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	filter := domain.PropertyFilter{
		Location: c.Query("location"),
		Amenity:  c.Query("amenities"),
	}
	if raw := c.Query("pricePerNight"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.NewValidationError("pricePerNight must be a number",
				map[string]any{"invalid": map[string]string{"pricePerNight": "number"}})
		}
		filter.PricePerNight = &price
	}
	properties, err := h.properties.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(properties)
}

func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.properties.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(property)
}

func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	var input domain.PropertyInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	property, err := h.properties.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return created(c, property)
}

func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	property, err := h.properties.Update(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(property)
}

func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.properties.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return deleted(c, msg)
}
