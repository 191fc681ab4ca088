package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
	"github.com/euroviaje/trip-ledger/internal/luggage"
	luggageSqlite "github.com/euroviaje/trip-ledger/internal/luggage/sqlite"
	settingsSqlite "github.com/euroviaje/trip-ledger/internal/settings/sqlite"
	"github.com/euroviaje/trip-ledger/internal/storage"
	"github.com/euroviaje/trip-ledger/internal/user"
	userSqlite "github.com/euroviaje/trip-ledger/internal/user/sqlite"
	"github.com/euroviaje/trip-ledger/internal/wallet"
	walletSqlite "github.com/euroviaje/trip-ledger/internal/wallet/sqlite"
	"github.com/euroviaje/trip-ledger/pkg/logger"
)

var (
	seedEmail    string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo account",
	Long:  `Seed the database with a demo account, starter wallets and the default packing list.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		store, err := storage.Open(cfg.Database, logger.L())
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		if err := store.Migrate(); err != nil {
			log.Fatalf("migration failed: %v", err)
		}

		db := store.DB()
		settingsRepo := settingsSqlite.NewSettingsRepository(db)
		userSvc := user.NewService(userSqlite.NewUserRepository(db), settingsRepo, logger.L())

		u, err := userSvc.Register(user.RegisterDTO{Email: seedEmail, Password: seedPassword})
		if err != nil {
			if u, err = userSvc.Login(user.LoginDTO{Email: seedEmail, Password: seedPassword}); err != nil {
				log.Fatalf("failed to seed user: %v", err)
			}
			fmt.Println("seed user already exists:", seedEmail)
		} else {
			fmt.Println("seeded user:", seedEmail)
		}

		walletRepo := walletSqlite.NewWalletRepository(db)
		wallets, err := walletRepo.GetAllByUserID(u.ID)
		if err != nil {
			log.Fatalf("failed to list wallets: %v", err)
		}

		if len(wallets) == 0 {
			starters := []*wallet.Wallet{
				{UserID: u.ID, Name: "Efectivo", Type: wallet.TypeCash, Currency: currency.EUR, BalanceCents: 50000, InitialExchangeRate: cfg.Trip.DefaultExchangeRate},
				{UserID: u.ID, Name: "Tarjeta", Type: wallet.TypeCard, Currency: currency.EUR, BalanceCents: 150000, InitialExchangeRate: cfg.Trip.DefaultExchangeRate},
				{UserID: u.ID, Name: "Pesos", Type: wallet.TypeCash, Currency: currency.CLP, BalanceCents: 20000000, InitialExchangeRate: cfg.Trip.DefaultExchangeRate},
			}
			for _, w := range starters {
				if err := walletRepo.Create(w); err != nil {
					log.Fatalf("failed to seed wallet %s: %v", w.Name, err)
				}
				fmt.Println("seeded wallet:", w.Name)
			}
		}

		luggageSvc := luggage.NewService(luggageSqlite.NewLuggageRepository(db), logger.L())
		items, err := luggageSvc.GetUserItems(u.ID)
		if err != nil {
			log.Fatalf("failed to seed luggage: %v", err)
		}
		fmt.Printf("packing list ready with %d items\n", len(items))
	},
}
