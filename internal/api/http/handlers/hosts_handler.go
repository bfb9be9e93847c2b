package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/dto"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/service"
)

// HostsHandler exposes /hosts.
type HostsHandler struct {
	hosts *service.HostService
}

func NewHostsHandler(hosts *service.HostService) *HostsHandler {
	return &HostsHandler{hosts: hosts}
}

func (h *HostsHandler) List(c *fiber.Ctx) error {
	hosts, err := h.hosts.List(c.UserContext(), domain.HostFilter{Name: c.Query("name")})
	if err != nil {
		return err
	}
	return c.JSON(hosts)
}

func (h *HostsHandler) Get(c *fiber.Ctx) error {
	host, err := h.hosts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(host)
}

func (h *HostsHandler) Create(c *fiber.Ctx) error {
	var input domain.HostInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	host, err := h.hosts.Create(c.UserContext(), actor(c), input)
	if err != nil {
		return err
	}
	return created(c, host)
}

func (h *HostsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateHostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	host, err := h.hosts.Update(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(host)
}

func (h *HostsHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.hosts.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return deleted(c, msg)
}
