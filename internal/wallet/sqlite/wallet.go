package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/euroviaje/trip-ledger/internal/wallet"
)

// WalletRepository implements the wallet.Repository interface using GORM.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(w *wallet.Wallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) GetByID(id int64) (*wallet.Wallet, error) {
	var w wallet.Wallet
	err := r.db.Where("id = ?", id).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetAllByUserID(userID int64) ([]*wallet.Wallet, error) {
	var wallets []*wallet.Wallet
	err := r.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&wallets).Error
	return wallets, err
}

// Update applies only the given columns, never zeroing the rest.
func (r *WalletRepository) Update(id int64, fields map[string]interface{}) error {
	return r.db.Model(&wallet.Wallet{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *WalletRepository) UpdateBalance(id int64, balanceCents int64) error {
	return r.db.Model(&wallet.Wallet{}).
		Where("id = ?", id).
		Update("balance_cents", balanceCents).Error
}

func (r *WalletRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&wallet.Wallet{}).Error
}

// CountExpenses reports how many expenses still reference the wallet.
func (r *WalletRepository) CountExpenses(walletID int64) (int64, error) {
	var count int64
	err := r.db.Table("expenses").Where("wallet_id = ?", walletID).Count(&count).Error
	return count, err
}
