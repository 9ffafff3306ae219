package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/observability"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "innerplog",
	Short:         "InnerPlog blog service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		logger, err = observability.NewLogger(cfg.Logger)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
