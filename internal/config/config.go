// Package config loads wallet configuration from a JSON file, environment
// variables, and an optional .env file, writing sensible defaults the first
// time the wallet runs in a directory.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the external configuration this core depends on (spec.md §6):
// the mint server URL, the wallet's base path, logging knobs, and the
// change-category knob called out as an Open Question in spec.md §9.
type Config struct {
	WalletPath     string
	Server         string
	LogLevel       string
	LogPath        string
	ChangeCategory string
}

// LoadConfig reads config.json from the current directory, applies
// environment overrides (loaded from .env if present), and writes a
// default config.json if none exists yet.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("WEBCASH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createDefaultConfig(); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	setDefaults()

	return &Config{
		WalletPath:     viper.GetString("wallet_path"),
		Server:         viper.GetString("server"),
		LogLevel:       viper.GetString("log_level"),
		LogPath:        viper.GetString("log_path"),
		ChangeCategory: viper.GetString("change_category"),
	}, nil
}

func setDefaults() {
	viper.SetDefault("wallet_path", "./wallet")
	viper.SetDefault("server", "https://webcash.org")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_path", "./wallet.log")
	// "change" is the intended semantics; "mining" reproduces the
	// teacher-observed external-miner workaround described in spec.md §9.
	viper.SetDefault("change_category", "change")
}

func createDefaultConfig() error {
	setDefaults()

	if err := viper.SafeWriteConfig(); err != nil {
		if os.IsExist(err) {
			if err := viper.WriteConfig(); err != nil {
				return fmt.Errorf("error writing config file: %w", err)
			}
		} else {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}

	fmt.Println("Created default configuration file")
	return nil
}
