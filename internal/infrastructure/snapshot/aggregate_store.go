// Package snapshot persists the billing aggregate and the operator
// preferences as JSON files. Absence of a file is a valid "no data" state;
// a file that no longer parses is surfaced as a corrupt snapshot, never
// partially applied.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
)

// aggregateFile keeps the historical snapshot name of the desktop tool.
const aggregateFile = "account.data"

// AggregateStore is a file-backed repository.AggregateRepository.
// Loads and saves are serialized: single-writer discipline.
type AggregateStore struct {
	mu   sync.Mutex
	path string
}

// NewAggregateStore builds the store rooted at dataDir.
func NewAggregateStore(dataDir string) *AggregateStore {
	return &AggregateStore{path: filepath.Join(dataDir, aggregateFile)}
}

// Save overwrites the previous snapshot wholesale.
func (s *AggregateStore) Save(_ context.Context, agg *entity.Aggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, agg)
}

// Load returns the last saved aggregate, or (nil, nil) when no snapshot
// exists. A snapshot that fails to parse yields domain.ErrCorruptSnapshot.
func (s *AggregateStore) Load(_ context.Context) (*entity.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", s.path, err)
	}

	var agg entity.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, s.path, err)
	}
	if agg.Houses == nil {
		agg.Houses = make(map[string]*entity.House)
	}
	if agg.Catalog == nil {
		agg.Catalog = make(map[string]entity.ServiceCatalogEntry)
	}
	return &agg, nil
}
