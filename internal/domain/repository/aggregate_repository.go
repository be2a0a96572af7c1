package repository

import (
	"context"

	"github.com/avolkov/bills-api/internal/domain/entity"
)

// AggregateRepository persists the billing aggregate snapshot.
//
// Load returns (nil, nil) when no snapshot exists — absence is a valid
// "no data" state, not an error. A structurally broken snapshot yields
// domain.ErrCorruptSnapshot and is never partially applied.
type AggregateRepository interface {
	Save(ctx context.Context, agg *entity.Aggregate) error
	Load(ctx context.Context) (*entity.Aggregate, error)
}
