package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tinyhttpd/core/config"
	"tinyhttpd/core/logger"
	"tinyhttpd/core/server"
	"tinyhttpd/feature/static"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the page server",
	Long: `Binds the IPv6 listening socket and serves pages until SIGINT or SIGTERM.
Socket, bind and address errors terminate the process immediately; a listen
failure is reported as a startup error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		loader, err := static.NewOsLoader(cfg.Server.DocRoot)
		if err != nil {
			return err
		}

		ln, err := server.Listen(cfg.Server)
		if err != nil {
			if server.IsFatal(err) {
				logg.Fatal("Failed to set up listening socket", zap.Error(err))
			}
			return fmt.Errorf("failed to start server: %w", err)
		}

		handler := static.NewHandler(loader, static.OptionsFromConfig(cfg.Server), logg)
		srv := server.New(cfg.Server, handler, logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logg.Info("Starting server",
			zap.Uint16("port", cfg.Server.Port),
			zap.String("bind_address", cfg.Server.BindAddress),
			zap.Int("backlog", cfg.Server.Backlog),
			zap.Int("max_connections", cfg.Server.MaxConnections),
			zap.String("doc_root", cfg.Server.DocRoot),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Serve(ln); !errors.Is(err, server.ErrServerClosed) {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown incomplete: %w", err)
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logg.Info("Server stopped")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
