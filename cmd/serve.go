package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docpress/docpress/internal/config"
	"github.com/docpress/docpress/internal/db"
	"github.com/docpress/docpress/internal/server"
	"github.com/docpress/docpress/internal/source"
	"github.com/docpress/docpress/internal/store"
	"github.com/docpress/docpress/internal/transform"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docpress server",
	Long:  `Starts the docpress HTTP server, serving registered documents through the transform pipeline with a persistent cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

		reg, err := cfg.Registry()
		if err != nil {
			return fmt.Errorf("building document registry: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "docpress.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		var fetcher source.Fetcher
		switch cfg.Source.Mode {
		case config.SourceDir:
			fetcher = source.NewDir(cfg.Source.Dir)
		default:
			fetcher = source.NewExport(time.Duration(cfg.Source.TimeoutSeconds) * time.Second)
		}

		srv := server.New(server.Config{
			Port:      cfg.Port,
			IndexFile: cfg.IndexFile,
			AllowAll:  cfg.AllowAllOrigins,
		}, reg, store.New(database), fetcher, transform.New(reg), log)

		// Graceful shutdown.
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
