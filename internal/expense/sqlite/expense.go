package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
	"github.com/euroviaje/trip-ledger/internal/expense"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *expense.Expense) error {
	return r.db.Create(e).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) GetAllByUserID(userID int64) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&expense.Expense{}).Error
}

// TotalsByUserID sums the EUR and CLP cent columns in one pass; the two
// sums stay independent all the way down to SQL.
func (r *ExpenseRepository) TotalsByUserID(userID int64) (int64, int64, error) {
	var row struct {
		TotalEurCents int64
		TotalClpCents int64
	}
	err := r.db.Model(&expense.Expense{}).
		Select("COALESCE(SUM(amount_eur_cents), 0) AS total_eur_cents, COALESCE(SUM(amount_clp_cents), 0) AS total_clp_cents").
		Where("user_id = ?", userID).
		Scan(&row).Error
	return row.TotalEurCents, row.TotalClpCents, err
}

func (r *ExpenseRepository) TotalsByCategory(userID int64) ([]*expense.CategoryTotal, error) {
	var rows []struct {
		Category      string
		TotalEurCents int64
	}
	err := r.db.Model(&expense.Expense{}).
		Select("category, COALESCE(SUM(amount_eur_cents), 0) AS total_eur_cents").
		Where("user_id = ?", userID).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]*expense.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = &expense.CategoryTotal{
			Category: row.Category,
			TotalEur: currency.FromCents(row.TotalEurCents),
		}
	}
	return totals, nil
}
