package settings_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/settings"
)

func TestSettings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Suite")
}

// Mock repository for testing
type mockSettingsRepository struct {
	values  map[string]string
	history []*settings.ExchangeRate
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsRepository) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepository) Remove(key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockSettingsRepository) GetAll() (map[string]string, error) {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *mockSettingsRepository) AppendRate(rate float64, updatedAt string) error {
	m.history = append(m.history, &settings.ExchangeRate{
		ID:        int64(len(m.history) + 1),
		Rate:      rate,
		UpdatedAt: updatedAt,
	})
	return nil
}

func (m *mockSettingsRepository) RateHistory() ([]*settings.ExchangeRate, error) {
	return m.history, nil
}

var _ = Describe("SettingsService", func() {
	var (
		service  *settings.Service
		mockRepo *mockSettingsRepository
	)

	defaults := internal.TripConfig{
		DefaultExchangeRate:    1000,
		DefaultUSDExchangeRate: 1.1,
	}

	BeforeEach(func() {
		mockRepo = newMockSettingsRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = settings.NewService(mockRepo, defaults, logger)
	})

	Describe("Load", func() {
		It("should fall back to config defaults on an empty table", func() {
			loaded, err := service.Load()

			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.ExchangeRate).To(Equal(1000.0))
			Expect(loaded.USDExchangeRate).To(Equal(1.1))
			Expect(loaded.InitialBudgetEur).To(BeZero())
		})

		It("should seed an installation id on first run and keep it afterwards", func() {
			first, err := service.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(first.InstallationID).ToNot(BeEmpty())

			second, err := service.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(second.InstallationID).To(Equal(first.InstallationID))
		})

		It("should prefer stored values over defaults", func() {
			mockRepo.values[settings.KeyExchangeRate] = "950"
			mockRepo.values[settings.KeyTripStartDate] = "2026-03-10"

			loaded, err := service.Load()

			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.ExchangeRate).To(Equal(950.0))
			Expect(loaded.TripStartDate).To(Equal("2026-03-10"))
		})

		It("should ignore a malformed numeric value instead of failing", func() {
			mockRepo.values[settings.KeyExchangeRate] = "mil pesos"

			loaded, err := service.Load()

			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.ExchangeRate).To(Equal(1000.0))
		})
	})

	Describe("UpdateRates", func() {
		BeforeEach(func() {
			_, err := service.Load()
			Expect(err).ToNot(HaveOccurred())
		})

		It("should persist both rates and refresh the in-memory copy", func() {
			Expect(service.UpdateRates(980, 1.08)).To(Succeed())

			Expect(mockRepo.values[settings.KeyExchangeRate]).To(Equal("980"))
			Expect(mockRepo.values[settings.KeyUSDExchangeRate]).To(Equal("1.08"))
			Expect(service.Current().ExchangeRate).To(Equal(980.0))
			Expect(service.Rates().EURToUSD).To(Equal(1.08))
		})

		It("should append every edit to the rate history", func() {
			Expect(service.UpdateRates(980, 1.08)).To(Succeed())
			Expect(service.UpdateRates(990, 1.08)).To(Succeed())

			history, err := service.RateHistory()
			Expect(err).ToNot(HaveOccurred())
			Expect(history).To(HaveLen(2))
			Expect(history[0].Rate).To(Equal(980.0))
			Expect(history[1].Rate).To(Equal(990.0))

			_, parseErr := time.Parse(time.RFC3339, history[0].UpdatedAt)
			Expect(parseErr).ToNot(HaveOccurred())
		})

		It("should reject a non-positive rate without touching the stored values", func() {
			err := service.UpdateRates(0, 1.08)

			Expect(err).To(HaveOccurred())
			_, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(mockRepo.values).ToNot(HaveKey(settings.KeyExchangeRate))
			Expect(mockRepo.history).To(BeEmpty())
		})
	})

	Describe("SetBudget", func() {
		It("should store both figures independently", func() {
			_, err := service.Load()
			Expect(err).ToNot(HaveOccurred())

			Expect(service.SetBudget(2500, 1800000)).To(Succeed())

			Expect(mockRepo.values[settings.KeyInitialBudgetEur]).To(Equal("2500"))
			Expect(mockRepo.values[settings.KeyInitialBudgetClp]).To(Equal("1800000"))
			Expect(service.Current().InitialBudgetEur).To(Equal(2500.0))
			Expect(service.Current().InitialBudgetClp).To(Equal(1800000.0))
		})
	})

	Describe("SetTripStartDate", func() {
		It("should persist the date and update the cached state", func() {
			Expect(service.SetTripStartDate("2026-03-10")).To(Succeed())

			Expect(mockRepo.values[settings.KeyTripStartDate]).To(Equal("2026-03-10"))
			Expect(service.Current().TripStartDate).To(Equal("2026-03-10"))
		})
	})
})
