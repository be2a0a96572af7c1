package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/domain"
)

// DocumentHandler triggers per-house document generation.
type DocumentHandler struct {
	uc *billing.DocumentUseCase
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(uc *billing.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Generate POST /api/v1/documents
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if len(in.HouseIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "houseIds is required"})
	}

	results, err := h.uc.GenerateForHouses(c.Context(), in.HouseIDs)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_DATA", Message: "import an export first"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.GenerateResponse{Results: make([]dto.HouseResultItem, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, dto.HouseResultItem{
			HouseID: r.HouseID,
			Address: r.Address,
			Status:  string(r.Status),
			Pages:   r.Pages,
			Path:    r.Path,
			Message: r.Message,
		})
	}
	return c.JSON(resp)
}
