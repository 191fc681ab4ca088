package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trip-ledger",
	Short: "Trip Ledger",
	Long:  `Local multi-currency trip expense ledger.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "trip-ledger.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("trip.default_exchange_rate", 1000)
	v.SetDefault("trip.default_usd_exchange_rate", 1.1)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	return &cfg, nil
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "viajero@mail.com", "email for the seeded account")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "password for the seeded account")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
