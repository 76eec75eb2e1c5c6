package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fichedesk/dashboard/internal/infrastructure/seed"
	"github.com/fichedesk/dashboard/internal/pkg/config"
	"github.com/fichedesk/dashboard/pkg/logger"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all fiches with generated demo data",
	Long: `Generates demo fiches into the configured store. Existing users are kept.
When the store has no users, --admin-email and --password create an admin
and two advisors first.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Count, "count", seed.DefaultCount, "number of fiches to generate")
	seedCmd.Flags().StringVar(&seedOpts.AdminEmail, "admin-email", "", "admin email used when bootstrapping users")
	seedCmd.Flags().StringVar(&seedOpts.Password, "password", "", "password for bootstrapped users")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Env: cfg.Env})

	opened, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer opened.release(log)

	res, err := seed.Run(ctx, opened.store, seedOpts, logger.Component("seed"))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seed successful. Generated %d fiches (%d assigned).\n", res.Fiches, res.Assigned)
	return nil
}
