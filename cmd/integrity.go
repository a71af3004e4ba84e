package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tinyhttpd/core/config"
	"tinyhttpd/core/logger"
	"tinyhttpd/core/storage"
	"tinyhttpd/feature/integrity"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that every routed page can be served",
	Long: `Loads every page the router can select from the document root.
With --fix, pages missing from disk are downloaded from the configured bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fix, _ := cmd.Flags().GetBool("fix")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		root, err := filepath.Abs(cfg.Server.DocRoot)
		if err != nil {
			return fmt.Errorf("failed to resolve document root: %w", err)
		}
		fsys := afero.NewBasePathFs(afero.NewOsFs(), root)

		var client storage.Client
		if fix {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		svc := integrity.NewService(fsys, client, cfg.Storage, logg)

		report, err := svc.CheckPages(ctx)
		if err != nil {
			return fmt.Errorf("page check failed: %w", err)
		}

		if fix && len(report.Missing) > 0 {
			logg.Info("Restoring missing pages", zap.Strings("pages", report.Missing), zap.String("bucket", cfg.Storage.Bucket))
			if err := svc.FixPages(ctx, report.Missing); err != nil {
				return fmt.Errorf("failed to restore pages: %w", err)
			}
			if report, err = svc.CheckPages(ctx); err != nil {
				return fmt.Errorf("page check failed: %w", err)
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
		} else {
			for _, p := range report.Pages {
				if p.OK {
					logg.Info("Page ok", zap.String("page", p.Name), zap.Int("size", p.Size))
				} else {
					logg.Warn("Page cannot be served", zap.String("page", p.Name), zap.String("error", p.Error))
				}
			}
		}

		if !report.Healthy() {
			return fmt.Errorf("%d missing and %d unreadable pages in %s", len(report.Missing), len(report.Unreadable), root)
		}
		return nil
	},
}

func init() {
	integrityCmd.Flags().Bool("fix", false, "Download missing pages from the storage bucket")
	integrityCmd.Flags().Bool("json", false, "Print the report as JSON")
	RootCmd.AddCommand(integrityCmd)
}
