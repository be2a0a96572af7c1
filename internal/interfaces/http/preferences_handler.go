package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/domain/entity"
	"github.com/avolkov/bills-api/internal/domain/repository"
)

// PreferencesHandler serves load/save of the operator preferences.
type PreferencesHandler struct {
	repo repository.PreferencesRepository
}

// NewPreferencesHandler builds the handler.
func NewPreferencesHandler(repo repository.PreferencesRepository) *PreferencesHandler {
	return &PreferencesHandler{repo: repo}
}

// Get GET /api/v1/preferences
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	prefs, err := h.repo.Load(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(prefs)
}

// Put PUT /api/v1/preferences
func (h *PreferencesHandler) Put(c *fiber.Ctx) error {
	var prefs entity.StoredPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid preferences body"})
	}
	if err := h.repo.Save(c.Context(), &prefs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(prefs)
}
