package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aatrey56/hoops-draft/internal/game"
	"github.com/aatrey56/hoops-draft/internal/httpapi"
	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/mcptools"
	"github.com/aatrey56/hoops-draft/internal/store"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the draft game over HTTP (and MCP when enabled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address (overrides HOOPS_ADDR)")
}

func openStores(ctx context.Context) (*sqlite.Store, *store.JSONStore, error) {
	if err := os.MkdirAll(cfg.DataRoot, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data root: %w", err)
	}
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, store.NewJSONStore(cfg.DataRoot), nil
}

func serve(ctx context.Context) error {
	db, files, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := game.NewService(game.Deps{
		Sessions:    db,
		Catalog:     db,
		Dataset:     league.NewFileSource(files, cfg.LeagueDataset),
		Archive:     files,
		ArchiveRoot: cfg.ArchiveRoot,
		Logger:      logger,
	})
	api := httpapi.New(svc, httpapi.Options{
		SessionCookie:       cfg.SessionCookie,
		DefaultParticipants: cfg.Participants,
		Logger:              logger,
	})
	if cfg.MCPEnabled {
		key := cfg.MCPAPIKey
		if !cfg.MCPRequireAuth {
			key = ""
		}
		tools := mcptools.NewServer(svc, cfg.Participants, logger)
		api.Handle(cfg.MCPPath, mcptools.WithAuth(key, cfg.AuthHeader, tools.Handler()))
		api.Handle("GET /tools", mcptools.WithAuth(key, cfg.AuthHeader, tools.ToolsHandler()))
		logger.Info("mcp enabled", zap.String("path", cfg.MCPPath), zap.Int("tools", len(tools.Tools())))
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
