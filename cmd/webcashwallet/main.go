package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/webcash/walletcore/internal/config"
	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/logger"
	"github.com/webcash/walletcore/internal/wallet"
	"github.com/webcash/walletcore/internal/webcash"
)

var rootCmd = &cobra.Command{
	Use:   "webcashwallet",
	Short: "Webcash wallet CLI",
	Long:  `A thin command-line front end over the webcash wallet core.`,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(acceptTermsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openWallet loads configuration, initializes logging, and opens the
// wallet at the configured path. Every subcommand goes through this so
// none of them duplicate the config/logger wiring.
func openWallet() (*wallet.Wallet, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := logger.Init(cfg.LogPath); err != nil {
		log.Printf("warning: unable to initialize log file: %v", err)
	}

	changeCategory := hdkey.Change
	if cfg.ChangeCategory == "mining" {
		changeCategory = hdkey.Mining
	}

	return wallet.Open(cfg.WalletPath, cfg.Server, wallet.WithChangeCategory(changeCategory))
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print unspent balances by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWallet()
		if err != nil {
			return err
		}
		defer w.Close()

		balances, err := w.Balances(false)
		if err != nil {
			return fmt.Errorf("error getting wallet balance: %w", err)
		}
		for _, b := range balances {
			fmt.Printf("%-8s %s (%d outputs)\n", b.Category, webcash.Amount(b.Amount).String(), b.Count)
		}
		return nil
	},
}

var acceptTermsCmd = &cobra.Command{
	Use:   "accept-terms [legalese]",
	Short: "Record acceptance of the mint server's terms of service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWallet()
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.AcceptTerms(args[0]); err != nil {
			return fmt.Errorf("error accepting terms: %w", err)
		}
		fmt.Println("Terms accepted")
		return nil
	},
}
