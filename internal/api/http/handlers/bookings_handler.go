package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/service"
)

// BookingsHandler exposes /bookings.
type BookingsHandler struct {
	bookings *service.BookingService
}

func NewBookingsHandler(bookings *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

// List handles GET /bookings?userId=.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookings.List(c.UserContext(), domain.BookingFilter{UserID: c.Query("userId")})
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	booking, err := h.bookings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	var input domain.BookingInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	booking, err := h.bookings.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return created(c, booking)
}

func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	booking, err := h.bookings.Update(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.bookings.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return deleted(c, msg)
}
