package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/application/importer"
	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
)

// ImportHandler handles export ingestion.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler builds the handler.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Import POST /api/v1/import
//
// Accepts either {"path": "<export file>"} or the raw export envelope as
// the request body.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var agg *entity.Aggregate
	var err error

	var in dto.ImportRequest
	if bErr := c.BodyParser(&in); bErr == nil && in.Path != "" {
		agg, err = h.uc.ImportFile(c.Context(), in.Path)
	} else {
		agg, err = h.uc.Import(c.Context(), c.Body())
	}

	if err != nil {
		if errors.Is(err, domain.ErrMalformedDate) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_EXPORT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	stats := agg.Stats()
	return c.Status(fiber.StatusCreated).JSON(dto.ImportSummary{
		Houses:   stats.Houses,
		Accounts: stats.Accounts,
		Errors:   len(agg.Errors),
		Period:   agg.Preferences.Label(),
	})
}
