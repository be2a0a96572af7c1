package repository

import (
	"context"

	"github.com/avolkov/bills-api/internal/domain/entity"
)

// PreferencesRepository persists operator preferences independently of any
// import batch. Load returns zero-value preferences when the file is absent.
type PreferencesRepository interface {
	Save(ctx context.Context, prefs *entity.StoredPreferences) error
	Load(ctx context.Context) (*entity.StoredPreferences, error)
}
