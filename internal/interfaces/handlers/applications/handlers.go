package applications

import (
	"strconv"

	appsvc "petsitter-backend/internal/application/applications"
	"petsitter-backend/internal/domain"
	"petsitter-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *appsvc.Service
}

// POST /api/v1/listings/:id/applications — 201, application created pending
func (h *Handlers) Apply(c *fiber.Ctx) error {
	listingID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Validation failed (numeric string is expected)")
	}

	var body struct {
		SitterID string `json:"sitterId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	app, err := h.Service.Apply(c.Context(), body.SitterID, listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// PATCH /api/v1/applications/:id — body {"status": "pending|accepted|rejected"}
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Validation failed (numeric string is expected)")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	status := domain.ApplicationStatus(body.Status)
	if !domain.ValidApplicationStatus(status) {
		return response.Error(c, fiber.StatusBadRequest, "status must be one of: pending, accepted, rejected")
	}

	app, err := h.Service.UpdateStatus(c.Context(), id, status)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(app)
}

// GET /api/v1/sitters/:sitterId/applications — enriched with parent listings
func (h *Handlers) BySitter(c *fiber.Ctx) error {
	apps, err := h.Service.BySitter(c.Context(), c.Params("sitterId"))
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(apps)
}

// GET /api/v1/listings/:listingId/applications
func (h *Handlers) ByListing(c *fiber.Ctx) error {
	listingID, err := parseID(c, "listingId")
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Validation failed (numeric string is expected)")
	}
	apps, err := h.Service.ByListing(c.Context(), listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(apps)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(param), 10, 64)
	return uint(n), err
}
