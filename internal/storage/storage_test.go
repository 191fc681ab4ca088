package storage_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

var _ = Describe("Store", func() {
	var (
		store  *storage.Store
		logger *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dbPath := filepath.Join(GinkgoT().TempDir(), "trip-ledger-test.db")

		var err error
		store, err = storage.Open(internal.DatabaseConfig{Path: dbPath}, logger)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	tableNames := func() []string {
		var names []string
		err := store.DB().Raw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		).Scan(&names).Error
		Expect(err).ToNot(HaveOccurred())
		return names
	}

	columnNames := func(table string) []string {
		var rows []struct {
			Name string
		}
		err := store.DB().Raw("PRAGMA table_info(" + table + ")").Scan(&rows).Error
		Expect(err).ToNot(HaveOccurred())
		names := make([]string, len(rows))
		for i, row := range rows {
			names[i] = row.Name
		}
		return names
	}

	Describe("Migrate", func() {
		It("should create every ledger table", func() {
			Expect(store.Migrate()).To(Succeed())

			Expect(tableNames()).To(ContainElements(
				"users", "wallets", "expenses", "settings", "exchange_rates", "luggage_items",
			))
		})

		It("should record a monotonic schema version", func() {
			Expect(store.Migrate()).To(Succeed())

			version, err := store.Version()
			Expect(err).ToNot(HaveOccurred())
			Expect(version).To(BeNumerically(">=", 4))
		})

		It("should evolve the wallet layout past the legacy column", func() {
			Expect(store.Migrate()).To(Succeed())

			cols := columnNames("wallets")
			Expect(cols).To(ContainElements("currency", "balance_cents"))
			Expect(cols).ToNot(ContainElement("balance_eur_cents"))
		})

		It("should add the expense trip columns", func() {
			Expect(store.Migrate()).To(Succeed())

			cols := columnNames("expenses")
			Expect(cols).To(ContainElements("amount_original_cents", "is_pre_trip"))
		})

		It("should be idempotent", func() {
			Expect(store.Migrate()).To(Succeed())
			tablesOnce := tableNames()
			walletColsOnce := columnNames("wallets")
			versionOnce, err := store.Version()
			Expect(err).ToNot(HaveOccurred())

			Expect(store.Migrate()).To(Succeed())
			Expect(tableNames()).To(Equal(tablesOnce))
			Expect(columnNames("wallets")).To(Equal(walletColsOnce))

			versionTwice, err := store.Version()
			Expect(err).ToNot(HaveOccurred())
			Expect(versionTwice).To(Equal(versionOnce))
		})

		It("should not lose rows written before a re-run", func() {
			Expect(store.Migrate()).To(Succeed())

			err := store.DB().Exec(
				"INSERT INTO users (email, password) VALUES (?, ?)", "keep@mail.com", "hash",
			).Error
			Expect(err).ToNot(HaveOccurred())

			Expect(store.Migrate()).To(Succeed())

			var count int64
			err = store.DB().Raw("SELECT COUNT(*) FROM users").Scan(&count).Error
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("foreign keys", func() {
		It("should cascade a user delete through the owned tables", func() {
			Expect(store.Migrate()).To(Succeed())

			db := store.DB()
			Expect(db.Exec("INSERT INTO users (email, password) VALUES ('a@mail.com', 'h')").Error).To(Succeed())
			Expect(db.Exec("INSERT INTO wallets (user_id, name, type, balance_cents, initial_exchange_rate) VALUES (1, 'Cash', 'cash', 1000, 950)").Error).To(Succeed())
			Expect(db.Exec("INSERT INTO luggage_items (user_id, name, type) VALUES (1, 'Jeans', 'clothing')").Error).To(Succeed())

			Expect(db.Exec("DELETE FROM users WHERE id = 1").Error).To(Succeed())

			var wallets, items int64
			Expect(db.Raw("SELECT COUNT(*) FROM wallets").Scan(&wallets).Error).To(Succeed())
			Expect(db.Raw("SELECT COUNT(*) FROM luggage_items").Scan(&items).Error).To(Succeed())
			Expect(wallets).To(BeZero())
			Expect(items).To(BeZero())
		})
	})
})
