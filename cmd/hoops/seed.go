package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aatrey56/hoops-draft/internal/seed"
)

var (
	seedCatalog string
	seedSamples bool
	seedClear   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the catalog with NBA teams, a YAML catalog and sample players",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := seed.Options{Clear: seedClear, Samples: seedSamples}
		if seedCatalog != "" {
			raw, err := os.ReadFile(seedCatalog)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			c, err := seed.ParseCatalog(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", seedCatalog, err)
			}
			opts.Catalog = c
		}

		db, _, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		rep, err := seed.NewSeeder(db, logger).Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		b, _ := json.MarshalIndent(rep, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalog, "catalog", "", "YAML catalog of teams, players and seasons")
	seedCmd.Flags().BoolVar(&seedSamples, "samples", false, "create five sample players per team")
	seedCmd.Flags().BoolVar(&seedClear, "clear", false, "clear teams, players and seasons first")
}
