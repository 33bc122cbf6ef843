// Package main is the entry point for the bridge CLI: match free-text
// grocery items against both store catalogs, plan cart additions, and
// compare checkout totals from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/config"
	"github.com/basketbridge/backend/internal/domain"
	"github.com/basketbridge/backend/internal/infrastructure/appie"
	"github.com/basketbridge/backend/internal/infrastructure/cache"
	"github.com/basketbridge/backend/internal/infrastructure/picnic"
	"github.com/basketbridge/backend/internal/usecase"
)

// rootCmd is the base command for the bridge CLI.
var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Bridge commands for the dual-store grocery cart workflow",
	Long: `bridge resolves plain grocery item names against both store catalogs,
plans cart additions for fully resolved batches, and compares checkout
totals between the two stores.

Configuration comes from config.yaml or BASKETBRIDGE_* environment
variables; see the config package for the full set of keys.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// services bundles the wired usecase layer for the subcommands.
type services struct {
	cfg      *config.Config
	catalogs []domain.Catalog
	matcher  *usecase.MatcherService
	cart     *usecase.CartService
	checkout *usecase.CheckoutService
	ah       domain.CartClient
	picnic   domain.CartClient
}

func newServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	ahClient := appie.NewClient(cfg.AH.BaseURL, cfg.AH.Token)
	picnicClient := picnic.NewClient(cfg.Picnic.BaseURL, cfg.Picnic.Token)
	cacheStore := cache.NewFileStore(cfg.Cache.File)

	catalogs := []domain.Catalog{ahClient, picnicClient}
	matcher := usecase.NewMatcherService(catalogs, cacheStore, usecase.MatcherConfig{
		Settings:           cfg.MatchSettings(),
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	return &services{
		cfg:      cfg,
		catalogs: catalogs,
		matcher:  matcher,
		cart:     usecase.NewCartService([]domain.CartClient{ahClient, picnicClient}),
		checkout: usecase.NewCheckoutService(ahClient, picnicClient, cfg.Checkout.PicnicPriceUnit),
		ah:       ahClient,
		picnic:   picnicClient,
	}, nil
}

// printJSON writes indented JSON to stdout, matching the output contract of
// every subcommand.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(payload))
		os.Exit(1)
	}
}
