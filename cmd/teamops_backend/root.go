package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "teamops_backend",
	Short: "TeamOps project and KPI tracking API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		// Initialize structured logger
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: middleware.ParseLogLevel(cfg.LogLevel)}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the root command. Without a subcommand the API server is started.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}
