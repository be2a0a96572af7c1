package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/repository"
)

// ErrorsHandler serves the accumulated error list.
type ErrorsHandler struct {
	store repository.AggregateRepository
}

// NewErrorsHandler builds the handler.
func NewErrorsHandler(store repository.AggregateRepository) *ErrorsHandler {
	return &ErrorsHandler{store: store}
}

// List GET /api/v1/errors
//
// A corrupt snapshot does not hide the list behind an error: the
// corruption message is served as its only entry until a re-import.
func (h *ErrorsHandler) List(c *fiber.Ctx) error {
	agg, err := h.store.Load(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCorruptSnapshot) {
			return c.JSON(dto.ErrorListResponse{Count: 1, Errors: []string{err.Error()}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.ErrorListResponse{Errors: []string{}}
	if agg != nil {
		resp.Errors = agg.Errors
		resp.Count = len(agg.Errors)
	}
	return c.JSON(resp)
}
