package expense

import (
	"log/slog"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
	"github.com/euroviaje/trip-ledger/internal/wallet"
)

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(e *Expense) error
	GetByID(id int64) (*Expense, error)
	GetAllByUserID(userID int64) ([]*Expense, error)
	Delete(id int64) error
	TotalsByUserID(userID int64) (eurCents, clpCents int64, err error)
	TotalsByCategory(userID int64) ([]*CategoryTotal, error)
}

// WalletStore is the slice of the wallet repository the consistency rules
// need: read a wallet and move its balance.
type WalletStore interface {
	GetByID(id int64) (*wallet.Wallet, error)
	UpdateBalance(id int64, balanceCents int64) error
}

// RatesProvider hands out the exchange rates in effect at entry time.
type RatesProvider interface {
	Rates() currency.Rates
}

// Service keeps wallet balances and multi-currency expense fields coherent.
// The expense insert and the wallet debit are two sequential statements,
// not one transaction; a failure between them leaves the wallet stale and
// is logged as such.
type Service struct {
	repo    Repository
	wallets WalletStore
	rates   RatesProvider
	logger  *slog.Logger
}

func NewService(repo Repository, wallets WalletStore, rates RatesProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		wallets: wallets,
		rates:   rates,
		logger:  logger,
	}
}

// CreateExpense derives the EUR and CLP amounts from the current rates,
// persists the expense, then debits the wallet by the original amount in
// the wallet's own currency.
func (s *Service) CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	w, err := s.wallets.GetByID(dto.WalletID)
	if err != nil {
		return nil, wallet.ErrWalletNotFound
	}
	if w.UserID != userID {
		s.logger.Warn("expense create denied", "wallet_id", dto.WalletID, "user_id", userID)
		return nil, wallet.ErrUnauthorizedAccess
	}

	rates := s.rates.Rates()
	if err := rates.Validate(); err != nil {
		s.logger.Error("rates unusable for conversion", "error", err)
		return nil, err
	}

	amount := currency.Sanitize(dto.Amount)
	amountEur, err := rates.ToEUR(amount, w.Currency)
	if err != nil {
		return nil, err
	}
	amountClp, err := rates.FromEUR(amountEur, currency.CLP)
	if err != nil {
		return nil, err
	}

	originalCents := currency.ToCents(amount)
	newBalance := w.BalanceCents - originalCents
	if newBalance < 0 && !w.AllowsNegative() {
		s.logger.Warn("expense rejected: would overdraw wallet",
			"wallet_id", w.ID,
			"balance_cents", w.BalanceCents,
			"amount_cents", originalCents)
		return nil, ErrInsufficientFunds
	}

	e := &Expense{
		UserID:              userID,
		WalletID:            w.ID,
		Title:               dto.Title,
		Description:         dto.Description,
		AmountOriginalCents: originalCents,
		AmountEurCents:      currency.ToCents(amountEur),
		AmountClpCents:      currency.ToCents(amountClp),
		Category:            dto.Category,
		ExchangeRate:        rates.EURToCLP,
		Date:                dto.Date,
		IsPreTrip:           dto.IsPreTrip,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, err
	}

	if err := s.wallets.UpdateBalance(w.ID, newBalance); err != nil {
		// The expense row is already durable; the wallet is now stale.
		s.logger.Error("wallet debit failed after expense insert, ledger inconsistent",
			"error", err,
			"expense_id", e.ID,
			"wallet_id", w.ID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", e.ID,
		"user_id", userID,
		"wallet_id", w.ID,
		"amount_eur_cents", e.AmountEurCents)

	return e, nil
}

// DeleteExpense removes the expense and credits the debited amount back to
// its wallet, so balances do not drift high after deletions.
func (s *Service) DeleteExpense(userID, expenseID int64) error {
	e, err := s.repo.GetByID(expenseID)
	if err != nil {
		return ErrExpenseNotFound
	}
	if e.UserID != userID {
		s.logger.Warn("expense delete denied", "expense_id", expenseID, "user_id", userID)
		return ErrUnauthorizedAccess
	}

	if err := s.repo.Delete(expenseID); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", expenseID)
		return err
	}

	w, err := s.wallets.GetByID(e.WalletID)
	if err != nil {
		// The wallet may have been removed after its expenses; nothing to
		// restore then.
		s.logger.Warn("wallet missing on expense delete, balance not restored",
			"expense_id", expenseID,
			"wallet_id", e.WalletID)
		return nil
	}

	if err := s.wallets.UpdateBalance(w.ID, w.BalanceCents+e.AmountOriginalCents); err != nil {
		s.logger.Error("wallet credit failed after expense delete, ledger inconsistent",
			"error", err,
			"expense_id", expenseID,
			"wallet_id", w.ID)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", expenseID, "wallet_id", w.ID)
	return nil
}

func (s *Service) GetUserExpenses(userID int64) ([]*Expense, error) {
	expenses, err := s.repo.GetAllByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, err
	}
	return expenses, nil
}

// TotalSpent sums the EUR and CLP columns independently; the CLP figure is
// never re-derived from the EUR sum.
func (s *Service) TotalSpent(userID int64) (Totals, error) {
	eurCents, clpCents, err := s.repo.TotalsByUserID(userID)
	if err != nil {
		s.logger.Error("failed to sum expenses", "error", err, "user_id", userID)
		return Totals{}, err
	}
	return Totals{
		Eur: currency.FromCents(eurCents),
		Clp: currency.FromCents(clpCents),
	}, nil
}

func (s *Service) SpendByCategory(userID int64) ([]*CategoryTotal, error) {
	totals, err := s.repo.TotalsByCategory(userID)
	if err != nil {
		s.logger.Error("failed to aggregate categories", "error", err, "user_id", userID)
		return nil, err
	}
	return totals, nil
}
