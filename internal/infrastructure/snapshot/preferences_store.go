package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
)

// PreferencesStore is a file-backed repository.PreferencesRepository.
type PreferencesStore struct {
	mu   sync.Mutex
	path string
}

// NewPreferencesStore builds the store for the given pref file path.
func NewPreferencesStore(path string) *PreferencesStore {
	return &PreferencesStore{path: path}
}

// Save writes the preferences on explicit operator save.
func (s *PreferencesStore) Save(_ context.Context, prefs *entity.StoredPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, prefs)
}

// Load returns the stored preferences, or zero values when the file has
// never been written.
func (s *PreferencesStore) Load(_ context.Context) (*entity.StoredPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &entity.StoredPreferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences: read %s: %w", s.path, err)
	}

	var prefs entity.StoredPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, s.path, err)
	}
	return &prefs, nil
}
