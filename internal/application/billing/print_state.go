package billing

import (
	"context"
	"fmt"

	"github.com/avolkov/bills-api/internal/domain/entity"
	"github.com/avolkov/bills-api/internal/domain/repository"
)

// PrintStateTracker is the only component allowed to flip printed flags.
// It marks a house and every contained account after a successful assembly
// and persists the updated aggregate.
type PrintStateTracker struct {
	store repository.AggregateRepository
}

// NewPrintStateTracker builds the tracker.
func NewPrintStateTracker(store repository.AggregateRepository) *PrintStateTracker {
	return &PrintStateTracker{store: store}
}

// CommitAssembled marks the house and all its accounts printed and saves
// the aggregate. Called exactly once per Assembled transition. When the
// persist fails the flags are rolled back to their previous values, so
// the in-memory aggregate never carries printed state that was not saved.
func (t *PrintStateTracker) CommitAssembled(ctx context.Context, agg *entity.Aggregate, house *entity.House) error {
	prevHouse := house.Printed
	prev := make(map[string]bool, len(house.Accounts))
	for key, acc := range house.Accounts {
		prev[key] = acc.Printed
		acc.Printed = true
	}
	house.Printed = true

	if err := t.store.Save(ctx, agg); err != nil {
		house.Printed = prevHouse
		for key, acc := range house.Accounts {
			acc.Printed = prev[key]
		}
		return fmt.Errorf("print state: persist aggregate: %w", err)
	}
	return nil
}
