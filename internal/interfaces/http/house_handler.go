package http

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/repository"
)

// HouseHandler serves the house listing and the per-house account preview.
type HouseHandler struct {
	store repository.AggregateRepository
	calc  *billing.Calculator
}

// NewHouseHandler builds the handler.
func NewHouseHandler(store repository.AggregateRepository, calc *billing.Calculator) *HouseHandler {
	return &HouseHandler{store: store, calc: calc}
}

// List GET /api/v1/houses
//
// A corrupt snapshot degrades to the empty listing instead of an error:
// the operator re-imports, the message stays visible on the errors tab.
func (h *HouseHandler) List(c *fiber.Ctx) error {
	agg, err := h.store.Load(c.Context())
	if err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if agg == nil {
		return c.JSON(dto.HouseListResponse{Houses: []dto.HouseItem{}})
	}

	items := make([]dto.HouseItem, 0, len(agg.Houses))
	for id, house := range agg.Houses {
		items = append(items, dto.HouseItem{
			ID:       id,
			Address:  house.Address,
			Accounts: len(house.Accounts),
			Printed:  house.Printed,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Address < items[j].Address })

	stats := agg.Stats()
	return c.JSON(dto.HouseListResponse{
		Houses: items,
		Stats: dto.HouseStats{
			Houses:            stats.Houses,
			UnprintedHouses:   stats.UnprintedHouses,
			Accounts:          stats.Accounts,
			UnprintedAccounts: stats.UnprintedAccounts,
			BeginDate:         agg.Preferences.BeginDate.String(),
			EndDate:           agg.Preferences.EndDate.String(),
		},
	})
}

// Accounts GET /api/v1/houses/:id/accounts
//
// Computes charges for the receipt preview. Computation failures surface
// in the payload the way the printed receipt would show them: a zero total
// with a placeholder row.
func (h *HouseHandler) Accounts(c *fiber.Ctx) error {
	agg, err := h.store.Load(c.Context())
	if err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if agg == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_DATA", Message: "no billing data loaded"})
	}

	house, ok := agg.Houses[c.Params("id")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "house not found"})
	}

	resp := dto.HouseAccountsResponse{
		HouseID:  house.ID,
		Address:  house.Address,
		Accounts: make([]dto.AccountView, 0, len(house.Accounts)),
	}
	for _, key := range house.SortedAccountKeys() {
		acc := house.Accounts[key]
		charges, cErr := h.calc.Compute(acc, agg.Catalog)
		if cErr != nil {
			charges.Placeholder = cErr.Error()
		}
		view := dto.AccountView{
			Key:         key,
			Owner:       acc.OwnerFullName(),
			FlatNumber:  acc.FlatNumber,
			Placeholder: charges.Placeholder,
			Total:       charges.Total.StringFixed(2),
			Printed:     acc.Printed,
		}
		for _, item := range charges.Lines {
			view.Lines = append(view.Lines, dto.ChargeLineView{
				ServiceName:      item.ServiceName,
				Consumption:      item.Consumption.String(),
				Price:            item.Price.String(),
				ChargeSum:        item.ChargeSum.String(),
				RecalculationSum: item.RecalculationSum.String(),
				Total:            item.Total.String(),
			})
		}
		resp.Accounts = append(resp.Accounts, view)
	}
	return c.JSON(resp)
}
