package wallet

import (
	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/core/common/validation"
	"github.com/euroviaje/trip-ledger/internal/core/currency"
)

const (
	TypeCash        = "cash"
	TypeCard        = "card"
	TypeVirtualCard = "virtual_card"
	TypeCredit      = "credit"
)

// Wallet is a named balance holder in one currency. The balance is stored
// in the wallet's own minor units; only credit wallets may go negative.
type Wallet struct {
	ID                  int64             `json:"id" gorm:"primaryKey"`
	UserID              int64             `json:"user_id" gorm:"column:user_id;not null"`
	Name                string            `json:"name" gorm:"not null"`
	Type                string            `json:"type" gorm:"not null"`
	Currency            currency.Currency `json:"currency" gorm:"column:currency;default:EUR"`
	BalanceCents        int64             `json:"balance_cents" gorm:"column:balance_cents"`
	InitialExchangeRate float64           `json:"initial_exchange_rate" gorm:"column:initial_exchange_rate"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// Balance exposes the stored cents as a decimal amount in the wallet's
// currency.
func (w *Wallet) Balance() float64 {
	return currency.FromCents(w.BalanceCents)
}

// AllowsNegative reports whether the balance invariant permits this wallet
// to go below zero.
func (w *Wallet) AllowsNegative() bool {
	return w.Type == TypeCredit
}

type CreateWalletDTO struct {
	Name                string            `json:"name"`
	Type                string            `json:"type"`
	Currency            currency.Currency `json:"currency"`
	Balance             float64           `json:"balance"`
	InitialExchangeRate float64           `json:"initial_exchange_rate"`
}

func (dto CreateWalletDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("type", dto.Type).Required().OneOf(TypeCash, TypeCard, TypeVirtualCard, TypeCredit)
	v.Field("currency", string(dto.Currency)).Required().OneOf(string(currency.EUR), string(currency.USD), string(currency.CLP))
	// zero means not provided; the caller falls back to the current rate
	if dto.InitialExchangeRate != 0 {
		v.Field("initial_exchange_rate", dto.InitialExchangeRate).Positive(internal.ErrCodeInvalidRate)
	}
	return v.Validate()
}

// UpdateWalletDTO carries a partial update; nil fields are left untouched.
type UpdateWalletDTO struct {
	Name     *string            `json:"name,omitempty"`
	Type     *string            `json:"type,omitempty"`
	Currency *currency.Currency `json:"currency,omitempty"`
	Balance  *float64           `json:"balance,omitempty"`
}

func (dto UpdateWalletDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.Type != nil {
		v.Field("type", *dto.Type).OneOf(TypeCash, TypeCard, TypeVirtualCard, TypeCredit)
	}
	if dto.Currency != nil {
		v.Field("currency", string(*dto.Currency)).OneOf(string(currency.EUR), string(currency.USD), string(currency.CLP))
	}
	return v.Validate()
}

var (
	ErrWalletNotFound = internal.NewNotFoundError("wallet not found", internal.ErrCodeWalletNotFound)
	// ErrWalletHasExpenses blocks deletes that would cascade away recorded
	// expenses.
	ErrWalletHasExpenses  = internal.NewConflictError("wallet still has recorded expenses", internal.ErrCodeWalletHasExpenses)
	ErrNegativeBalance    = internal.NewValidationError("only credit wallets may hold a negative balance", internal.ErrCodeInsufficientBalance)
	ErrUnauthorizedAccess = internal.NewUnauthorizedError("wallet belongs to another user", internal.ErrCodeWalletNotFound)
)
