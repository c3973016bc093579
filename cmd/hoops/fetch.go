package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/fetch"
	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/store"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

var (
	fetchBaseURL string
	fetchPath    string
	fetchForce   bool
)

var fetchLeagueCmd = &cobra.Command{
	Use:   "fetch-league",
	Short: "Download the league attribute dataset into the data root",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL := cfg.LeagueBaseURL
		if cmd.Flags().Changed("base-url") {
			baseURL = fetchBaseURL
		}
		urlPath := cfg.LeaguePath
		if cmd.Flags().Changed("path") {
			urlPath = fetchPath
		}
		if baseURL == "" {
			return fmt.Errorf("league base url is required (HOOPS_LEAGUE_BASE_URL or --base-url)")
		}

		client := fetch.NewClient(store.NewJSONStore(cfg.DataRoot), baseURL, logger)
		ds, err := client.LeagueDataset(cmd.Context(), urlPath, cfg.LeagueDataset, fetchForce)
		if err != nil {
			return err
		}
		logger.Info("league dataset ready",
			zap.String("path", cfg.LeagueDataset),
			zap.Int("records", ds.Len()),
			zap.Strings("attributes", ds.Attributes))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the SQLite schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := sqlite.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return err
		}
		logger.Info("database migrated", zap.String("path", cfg.DBPath))
		return db.Close()
	},
}

func init() {
	fetchLeagueCmd.Flags().StringVar(&fetchBaseURL, "base-url", "", "league API base URL (overrides HOOPS_LEAGUE_BASE_URL)")
	fetchLeagueCmd.Flags().StringVar(&fetchPath, "path", "", "dataset path under the base URL (overrides HOOPS_LEAGUE_PATH)")
	fetchLeagueCmd.Flags().BoolVar(&fetchForce, "force", false, "download even when a cached copy exists")
}

var inventoryOut string

var leagueSchemaCmd = &cobra.Command{
	Use:   "league-schema",
	Short: "Inventory the keys and types of the cached league dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := store.NewJSONStore(cfg.DataRoot)
		raw, err := files.ReadRaw(cfg.LeagueDataset)
		if err != nil {
			return fmt.Errorf("read league dataset: %w", err)
		}
		inv, err := league.BuildInventory(raw)
		if err != nil {
			return err
		}
		if err := files.WriteJSON(inventoryOut, inv); err != nil {
			return err
		}
		if !inv.Uniform {
			logger.Warn("league dataset attributes are not uniform; missing values score as 0")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", files.Path(inventoryOut))
		return nil
	},
}

func init() {
	leagueSchemaCmd.Flags().StringVar(&inventoryOut, "out", "league/schema_inventory.json", "output path under the data root")
}
