package repository

import (
	"context"
	"errors"

	"github.com/timmy/quotewise/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository handles the key-value settings store. Both the
// authorization token and the quote cache live here, so settings survive
// process restarts.
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SettingRepository: repository instance bound to db.
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value by key.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: settings key.
// Returns:
//   - string: stored value, empty when absent.
//   - bool: true if the key exists.
//   - error: non-nil if the lookup fails.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var setting domain.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// Set stores a setting value, replacing any previous value for the key.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: settings key.
//   - value: value to persist.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	setting := domain.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// Delete removes a setting by key. Missing keys are not an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: settings key to remove.
// Returns:
//   - error: non-nil if the delete fails.
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&domain.Setting{}, "key = ?", key).Error
}
