package sqlite

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/euroviaje/trip-ledger/internal/settings"
)

// SettingsRepository implements the settings.Repository interface using
// GORM. It also serves as the user service's session store, since the
// session pointer is just another settings row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(key string) (string, bool, error) {
	var s settings.Setting
	err := r.db.Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.Value, true, nil
}

// Set inserts or replaces, matching the table's last-write-wins contract.
func (r *SettingsRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settings.Setting{Key: key, Value: value}).Error
}

func (r *SettingsRepository) Remove(key string) error {
	return r.db.Where("key = ?", key).Delete(&settings.Setting{}).Error
}

func (r *SettingsRepository) GetAll() (map[string]string, error) {
	var rows []settings.Setting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	all := make(map[string]string, len(rows))
	for _, row := range rows {
		all[row.Key] = row.Value
	}
	return all, nil
}

func (r *SettingsRepository) AppendRate(rate float64, updatedAt string) error {
	return r.db.Create(&settings.ExchangeRate{Rate: rate, UpdatedAt: updatedAt}).Error
}

func (r *SettingsRepository) RateHistory() ([]*settings.ExchangeRate, error) {
	var rows []*settings.ExchangeRate
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}
