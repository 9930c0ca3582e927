package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basket/cmd"
	"basket/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("basket: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "basket",
		Short:         "Basket order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "basket.yaml", "path to the YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newScenarioCmd(&configPath))
	root.AddCommand(newOrdersCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the operational HTTP host and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			return serve(c.Context(), cfg, logger, db)
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema migrated")
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference currencies and products",
		RunE: func(c *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err = postgres.Seed(c.Context(), db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			logger.Info("catalog seeded")
			return nil
		},
	}
}

func bootstrap(configPath string) (cmd.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := cmd.LoadConfig(configPath)
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	db, err := postgres.Open(cfg.DSN(), postgres.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}

	return cfg, logger, db, nil
}

func serve(ctx context.Context, cfg cmd.Config, logger *slog.Logger, db *gorm.DB) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(cfg, db, logger)
	if err != nil {
		closeDB(db)
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("shutdown", "error", closeErr)
		}
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	})
	g.Go(func() error {
		if startErr := jobManager.StartAll(); startErr != nil {
			return startErr
		}
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.Info("basket service started", "http_port", cfg.HTTPPort)
	return g.Wait()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
