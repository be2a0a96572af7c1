// Package billing computes per-account charges, encodes the payment QR
// payload and drives per-house receipt document generation.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
)

// NoDataPlaceholder is shown on the receipt when an account carries no
// charge data.
const NoDataPlaceholder = "Нет данных по задолженности"

// Calculator computes the ordered charge line items and the accumulated
// total of an account. All math is decimal; nothing is rounded until the
// total is displayed or encoded.
type Calculator struct{}

// NewCalculator builds the calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// Compute traverses the account's service collections in order and resolves
// each charge against the catalog.
//
// A service id absent from the catalog is recoverable: Compute returns a
// zero result together with an error wrapping domain.ErrUnknownService; the
// caller surfaces it as an error entry and carries on with other accounts.
// A nil account yields a placeholder result and no error.
func (c *Calculator) Compute(acc *entity.Account, catalog map[string]entity.ServiceCatalogEntry) (*entity.ChargeResult, error) {
	if acc == nil {
		return &entity.ChargeResult{Placeholder: NoDataPlaceholder}, nil
	}

	result := &entity.ChargeResult{}
	for _, coll := range acc.Collections {
		for _, serv := range coll.Services {
			svc, ok := catalog[serv.ServiceID]
			if !ok {
				return &entity.ChargeResult{}, fmt.Errorf(
					"billing: account %s: service %s: %w",
					acc.Key, serv.ServiceID, domain.ErrUnknownService)
			}
			recalc := decimal.Zero
			if serv.RecalculationSum != nil {
				recalc = *serv.RecalculationSum
			}
			lineTotal := serv.ChargeSum.Add(recalc)
			result.Lines = append(result.Lines, entity.ChargeLineItem{
				ServiceName:      svc.Name,
				Consumption:      serv.Consumption,
				Price:            serv.Price,
				ChargeSum:        serv.ChargeSum,
				RecalculationSum: recalc,
				Total:            lineTotal,
			})
			result.Total = result.Total.Add(lineTotal)
		}
	}

	if len(result.Lines) == 0 {
		result.Placeholder = NoDataPlaceholder
	}
	return result, nil
}
