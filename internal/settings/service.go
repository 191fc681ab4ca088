package settings

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/core/currency"
)

// Repository defines the data access methods for the settings table and
// the rate history.
type Repository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	GetAll() (map[string]string, error)
	AppendRate(rate float64, updatedAt string) error
	RateHistory() ([]*ExchangeRate, error)
}

// Service loads the key-value blob once into a typed struct and keeps the
// in-memory copy in step with every write.
type Service struct {
	repo     Repository
	defaults internal.TripConfig
	logger   *slog.Logger

	state Settings
}

func NewService(repo Repository, defaults internal.TripConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Load reads every stored key, fills gaps from config defaults and seeds
// the installation id on first run. Malformed numeric values fall back to
// their defaults rather than aborting startup.
func (s *Service) Load() (Settings, error) {
	stored, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load settings", "error", err)
		return Settings{}, err
	}

	s.state = Settings{
		ExchangeRate:     s.parseFloat(stored, KeyExchangeRate, s.defaults.DefaultExchangeRate),
		USDExchangeRate:  s.parseFloat(stored, KeyUSDExchangeRate, s.defaults.DefaultUSDExchangeRate),
		TripStartDate:    stored[KeyTripStartDate],
		InitialBudgetEur: s.parseFloat(stored, KeyInitialBudgetEur, 0),
		InitialBudgetClp: s.parseFloat(stored, KeyInitialBudgetClp, 0),
		InstallationID:   stored[KeyInstallationID],
	}

	if s.state.InstallationID == "" {
		s.state.InstallationID = uuid.NewString()
		if err := s.repo.Set(KeyInstallationID, s.state.InstallationID); err != nil {
			s.logger.Error("failed to seed installation id", "error", err)
			return Settings{}, err
		}
		s.logger.Info("installation id seeded", "installation_id", s.state.InstallationID)
	}

	s.logger.Info("settings loaded",
		"exchange_rate", s.state.ExchangeRate,
		"usd_exchange_rate", s.state.USDExchangeRate)

	return s.state, nil
}

func (s *Service) Current() Settings {
	return s.state
}

// Rates exposes the conversion rates in effect right now.
func (s *Service) Rates() currency.Rates {
	return currency.Rates{
		EURToCLP: s.state.ExchangeRate,
		EURToUSD: s.state.USDExchangeRate,
	}
}

// UpdateRates persists both rates and appends the EUR to CLP value to the
// rate history table.
func (s *Service) UpdateRates(eurToCLP, eurToUSD float64) error {
	rates := currency.Rates{EURToCLP: eurToCLP, EURToUSD: eurToUSD}
	if err := rates.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidRate)
	}

	if err := s.repo.Set(KeyExchangeRate, formatFloat(eurToCLP)); err != nil {
		s.logger.Error("failed to store exchange rate", "error", err)
		return err
	}
	if err := s.repo.Set(KeyUSDExchangeRate, formatFloat(eurToUSD)); err != nil {
		s.logger.Error("failed to store usd exchange rate", "error", err)
		return err
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.AppendRate(eurToCLP, updatedAt); err != nil {
		s.logger.Error("failed to append rate history", "error", err)
		return err
	}

	s.state.ExchangeRate = eurToCLP
	s.state.USDExchangeRate = eurToUSD
	s.logger.Info("exchange rates updated", "eur_to_clp", eurToCLP, "eur_to_usd", eurToUSD)
	return nil
}

// SetBudget stores both budget figures as entered; neither is derived from
// the other.
func (s *Service) SetBudget(eur, clp float64) error {
	eur = currency.Sanitize(eur)
	clp = currency.Sanitize(clp)

	if err := s.repo.Set(KeyInitialBudgetEur, formatFloat(eur)); err != nil {
		return err
	}
	if err := s.repo.Set(KeyInitialBudgetClp, formatFloat(clp)); err != nil {
		return err
	}

	s.state.InitialBudgetEur = eur
	s.state.InitialBudgetClp = clp
	s.logger.Info("budget updated", "eur", eur, "clp", clp)
	return nil
}

func (s *Service) SetTripStartDate(date string) error {
	if err := s.repo.Set(KeyTripStartDate, date); err != nil {
		return err
	}
	s.state.TripStartDate = date
	return nil
}

func (s *Service) RateHistory() ([]*ExchangeRate, error) {
	return s.repo.RateHistory()
}

func (s *Service) parseFloat(stored map[string]string, key string, fallback float64) float64 {
	raw, ok := stored[key]
	if !ok || raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("ignoring malformed setting", "key", key, "value", raw)
		return fallback
	}
	return currency.Sanitize(f)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
