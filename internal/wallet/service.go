package wallet

import (
	"log/slog"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
)

// Repository defines the data access methods for wallets. CountExpenses
// backs the referential check: the store would happily cascade a wallet
// delete, so the application must block it first.
type Repository interface {
	Create(w *Wallet) error
	GetByID(id int64) (*Wallet, error)
	GetAllByUserID(userID int64) ([]*Wallet, error)
	Update(id int64, fields map[string]interface{}) error
	UpdateBalance(id int64, balanceCents int64) error
	Delete(id int64) error
	CountExpenses(walletID int64) (int64, error)
}

// RatesProvider hands out the exchange rates in effect right now.
type RatesProvider interface {
	Rates() currency.Rates
}

type Service struct {
	repo   Repository
	rates  RatesProvider
	logger *slog.Logger
}

func NewService(repo Repository, rates RatesProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		rates:  rates,
		logger: logger,
	}
}

func (s *Service) CreateWallet(userID int64, dto CreateWalletDTO) (*Wallet, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("wallet validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	balanceCents := currency.ToCents(dto.Balance)
	if balanceCents < 0 && dto.Type != TypeCredit {
		return nil, ErrNegativeBalance
	}

	// capture the rate in effect at creation time unless one was supplied
	if dto.InitialExchangeRate == 0 {
		dto.InitialExchangeRate = s.rates.Rates().EURToCLP
	}

	w := &Wallet{
		UserID:              userID,
		Name:                dto.Name,
		Type:                dto.Type,
		Currency:            dto.Currency,
		BalanceCents:        balanceCents,
		InitialExchangeRate: dto.InitialExchangeRate,
	}
	if err := s.repo.Create(w); err != nil {
		s.logger.Error("failed to create wallet", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("wallet created", "wallet_id", w.ID, "user_id", userID, "currency", w.Currency)
	return w, nil
}

func (s *Service) GetUserWallets(userID int64) ([]*Wallet, error) {
	wallets, err := s.repo.GetAllByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list wallets", "error", err, "user_id", userID)
		return nil, err
	}
	return wallets, nil
}

// UpdateWallet applies only the supplied fields; everything else keeps its
// stored value.
func (s *Service) UpdateWallet(userID, walletID int64, dto UpdateWalletDTO) (*Wallet, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return nil, ErrWalletNotFound
	}
	if w.UserID != userID {
		s.logger.Warn("wallet update denied", "wallet_id", walletID, "user_id", userID)
		return nil, ErrUnauthorizedAccess
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
		w.Name = *dto.Name
	}
	if dto.Type != nil {
		fields["type"] = *dto.Type
		w.Type = *dto.Type
	}
	if dto.Currency != nil {
		fields["currency"] = string(*dto.Currency)
		w.Currency = *dto.Currency
	}
	if dto.Balance != nil {
		cents := currency.ToCents(*dto.Balance)
		if cents < 0 && !w.AllowsNegative() {
			return nil, ErrNegativeBalance
		}
		fields["balance_cents"] = cents
		w.BalanceCents = cents
	}

	if len(fields) == 0 {
		return w, nil
	}

	if err := s.repo.Update(walletID, fields); err != nil {
		s.logger.Error("failed to update wallet", "error", err, "wallet_id", walletID)
		return nil, err
	}

	s.logger.Info("wallet updated", "wallet_id", walletID)
	return w, nil
}

// DeleteWallet refuses to delete a wallet with recorded expenses. The
// store's foreign key would cascade the expenses away silently; the
// application blocks instead.
func (s *Service) DeleteWallet(userID, walletID int64) error {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return ErrWalletNotFound
	}
	if w.UserID != userID {
		return ErrUnauthorizedAccess
	}

	count, err := s.repo.CountExpenses(walletID)
	if err != nil {
		s.logger.Error("failed to count wallet expenses", "error", err, "wallet_id", walletID)
		return err
	}
	if count > 0 {
		s.logger.Warn("wallet delete blocked", "wallet_id", walletID, "expense_count", count)
		return ErrWalletHasExpenses
	}

	if err := s.repo.Delete(walletID); err != nil {
		s.logger.Error("failed to delete wallet", "error", err, "wallet_id", walletID)
		return err
	}

	s.logger.Info("wallet deleted", "wallet_id", walletID)
	return nil
}

// TotalBalance sums the user's wallets in the requested currency, each
// balance converted through the EUR pivot.
func (s *Service) TotalBalance(userID int64, in currency.Currency) (float64, error) {
	wallets, err := s.repo.GetAllByUserID(userID)
	if err != nil {
		return 0, err
	}

	rates := s.rates.Rates()
	var total float64
	for _, w := range wallets {
		converted, err := rates.Convert(w.Balance(), w.Currency, in)
		if err != nil {
			return 0, err
		}
		total += converted
	}
	return total, nil
}
