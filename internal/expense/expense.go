package expense

import (
	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/core/common/validation"
	"github.com/euroviaje/trip-ledger/internal/core/currency"
)

// Expense is a single spend event debited from exactly one wallet. The
// three amount columns are written once at creation with the rates then in
// effect and never recomputed, so history does not drift when rates change.
type Expense struct {
	ID                  int64   `json:"id" gorm:"primaryKey"`
	UserID              int64   `json:"user_id" gorm:"column:user_id;not null"`
	WalletID            int64   `json:"wallet_id" gorm:"column:wallet_id;not null"`
	Title               string  `json:"title" gorm:"not null"`
	Description         *string `json:"description,omitempty" gorm:"column:description"`
	AmountOriginalCents int64   `json:"amount_original_cents" gorm:"column:amount_original_cents"`
	AmountEurCents      int64   `json:"amount_eur_cents" gorm:"column:amount_eur_cents;not null"`
	AmountClpCents      int64   `json:"amount_clp_cents" gorm:"column:amount_clp_cents;not null"`
	Category            string  `json:"category" gorm:"not null"`
	ExchangeRate        float64 `json:"exchange_rate" gorm:"column:exchange_rate;not null"`
	Date                string  `json:"date" gorm:"not null"`
	IsPreTrip           bool    `json:"is_pre_trip,omitempty" gorm:"column:is_pre_trip"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) AmountEur() float64 {
	return currency.FromCents(e.AmountEurCents)
}

func (e *Expense) AmountClp() float64 {
	return currency.FromCents(e.AmountClpCents)
}

// CreateExpenseDTO carries the user's entry. Amount is in the wallet's own
// currency; the EUR and CLP amounts are derived at creation time.
type CreateExpenseDTO struct {
	WalletID    int64   `json:"wallet_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	IsPreTrip   bool    `json:"is_pre_trip,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("wallet_id", dto.WalletID).Required()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("amount", dto.Amount).Positive(internal.ErrCodeInvalidAmount)
	v.Field("category", dto.Category).Required()
	v.Field("date", dto.Date).Required()
	return v.Validate()
}

// Totals are the two independently summed columns; neither is derived from
// the other, so rounding error never compounds across rows.
type Totals struct {
	Eur float64 `json:"eur"`
	Clp float64 `json:"clp"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	TotalEur float64 `json:"total_eur"`
}

var (
	ErrExpenseNotFound    = internal.NewNotFoundError("expense not found", internal.ErrCodeExpenseNotFound)
	ErrUnauthorizedAccess = internal.NewUnauthorizedError("expense belongs to another user", internal.ErrCodeExpenseNotFound)
	ErrInsufficientFunds  = internal.NewValidationError("expense would overdraw a non-credit wallet", internal.ErrCodeInsufficientBalance)
)
