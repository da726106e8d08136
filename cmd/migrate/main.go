package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shayari/shayari-go/internal/config"
	"github.com/shayari/shayari-go/internal/repository"
)

var dsn string

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the shayari database schema",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), repository.MigrateUp)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), repository.MigrateDown)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied state of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), repository.MigrationStatus)
	},
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	if dsn == "" {
		return fmt.Errorf("database DSN is required")
	}
	db, err := repository.NewDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", cfg.DatabaseDSN, "MySQL DSN (defaults to DATABASE_DSN)")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
