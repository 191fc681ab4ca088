package sqlite_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
	"github.com/euroviaje/trip-ledger/internal/expense"
	"github.com/euroviaje/trip-ledger/internal/wallet"
	walletSqlite "github.com/euroviaje/trip-ledger/internal/wallet/sqlite"
)

func TestWalletRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Wallet Repository Suite")
}

var _ = Describe("WalletRepository", func() {
	var (
		db   *gorm.DB
		repo *walletSqlite.WalletRepository
	)

	userID := int64(1)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&wallet.Wallet{}, &expense.Expense{})).To(Succeed())

		repo = walletSqlite.NewWalletRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetAllByUserID", func() {
		It("should keep creation order and exclude other users", func() {
			for _, w := range []*wallet.Wallet{
				{UserID: userID, Name: "Efectivo", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 5000},
				{UserID: userID, Name: "Tarjeta", Type: wallet.TypeCard, Currency: currency.EUR, BalanceCents: 100000},
				{UserID: 2, Name: "Ajena", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 1},
			} {
				Expect(repo.Create(w)).To(Succeed())
			}

			wallets, err := repo.GetAllByUserID(userID)

			Expect(err).ToNot(HaveOccurred())
			Expect(wallets).To(HaveLen(2))
			Expect(wallets[0].Name).To(Equal("Efectivo"))
			Expect(wallets[1].Name).To(Equal("Tarjeta"))
		})
	})

	Describe("Update", func() {
		It("should leave unlisted columns untouched", func() {
			w := &wallet.Wallet{UserID: userID, Name: "Efectivo", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 5000, InitialExchangeRate: 950}
			Expect(repo.Create(w)).To(Succeed())

			Expect(repo.Update(w.ID, map[string]interface{}{"name": "Billetera"})).To(Succeed())

			updated, err := repo.GetByID(w.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Billetera"))
			Expect(updated.BalanceCents).To(Equal(int64(5000)))
			Expect(updated.InitialExchangeRate).To(Equal(950.0))
		})
	})

	Describe("UpdateBalance", func() {
		It("should write the new balance in cents", func() {
			w := &wallet.Wallet{UserID: userID, Name: "Efectivo", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 5000}
			Expect(repo.Create(w)).To(Succeed())

			Expect(repo.UpdateBalance(w.ID, 3250)).To(Succeed())

			updated, err := repo.GetByID(w.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.BalanceCents).To(Equal(int64(3250)))
		})
	})

	Describe("CountExpenses", func() {
		It("should count only rows referencing the wallet", func() {
			w := &wallet.Wallet{UserID: userID, Name: "Efectivo", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 5000}
			other := &wallet.Wallet{UserID: userID, Name: "Tarjeta", Type: wallet.TypeCard, Currency: currency.EUR, BalanceCents: 5000}
			Expect(repo.Create(w)).To(Succeed())
			Expect(repo.Create(other)).To(Succeed())

			for i := 0; i < 2; i++ {
				e := &expense.Expense{
					UserID: userID, WalletID: w.ID, Title: "Gasto",
					AmountEurCents: 100, AmountClpCents: 100000,
					Category: "food", ExchangeRate: 1000, Date: "2026-03-14T12:00:00Z",
				}
				Expect(db.Create(e).Error).To(Succeed())
			}

			count, err := repo.CountExpenses(w.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(2)))

			none, err := repo.CountExpenses(other.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(none).To(BeZero())
		})
	})

	Describe("GetByID", func() {
		It("should map a missing row to the not found sentinel", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(wallet.ErrWalletNotFound))
		})
	})
})
