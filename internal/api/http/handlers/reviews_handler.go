package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/service"
)

// ReviewsHandler exposes /reviews.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// List handles GET /reviews?propertyId=.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviews.List(c.UserContext(), domain.ReviewFilter{PropertyID: c.Query("propertyId")})
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

func (h *ReviewsHandler) Get(c *fiber.Ctx) error {
	review, err := h.reviews.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(review)
}

func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	var input domain.ReviewInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	review, err := h.reviews.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return created(c, review)
}

func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	review, err := h.reviews.Update(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(review)
}

func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.reviews.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return deleted(c, msg)
}
