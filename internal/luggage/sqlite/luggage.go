package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/euroviaje/trip-ledger/internal/luggage"
)

// LuggageRepository implements the luggage.Repository interface using GORM.
type LuggageRepository struct {
	db *gorm.DB
}

func NewLuggageRepository(db *gorm.DB) *LuggageRepository {
	return &LuggageRepository{db: db}
}

func (r *LuggageRepository) Create(item *luggage.Item) error {
	return r.db.Create(item).Error
}

func (r *LuggageRepository) GetByID(id int64) (*luggage.Item, error) {
	var item luggage.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, luggage.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *LuggageRepository) GetAllByUserID(userID int64) ([]*luggage.Item, error) {
	var items []*luggage.Item
	err := r.db.Where("user_id = ?", userID).
		Order("type, name").
		Find(&items).Error
	return items, err
}

func (r *LuggageRepository) Update(id int64, fields map[string]interface{}) error {
	return r.db.Model(&luggage.Item{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *LuggageRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&luggage.Item{}).Error
}

// WashAll folds dirty into clean for every clothing item in one statement.
func (r *LuggageRepository) WashAll(userID int64) error {
	return r.db.Exec(
		"UPDATE luggage_items SET clean_quantity = clean_quantity + dirty_quantity, dirty_quantity = 0 WHERE user_id = ? AND type = ?",
		userID, luggage.TypeClothing,
	).Error
}

func (r *LuggageRepository) WashItem(userID, itemID int64) error {
	return r.db.Exec(
		"UPDATE luggage_items SET clean_quantity = clean_quantity + dirty_quantity, dirty_quantity = 0 WHERE user_id = ? AND id = ? AND type = ?",
		userID, itemID, luggage.TypeClothing,
	).Error
}
