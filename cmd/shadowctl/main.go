// cmd/shadowctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JoshCentner/ShadowMatchPro/internal/config"
	"github.com/JoshCentner/ShadowMatchPro/internal/seed"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/postgres"
)

var databaseURL string

func init() {
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "db", "d", "", "Database URL (pgx5 scheme); defaults to the DB_* environment")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

var rootCmd = &cobra.Command{
	Use:   "shadowctl",
	Short: "Shadowctl manages the shadowing-marketplace database",
	Long:  `Shadowctl applies schema migrations and loads sample data for local development.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if err := postgres.RunMigrations(resolveDatabaseURL()); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("Migrations applied")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := postgres.NewMigrator(resolveDatabaseURL())
		if err != nil {
			log.Fatalf("Failed to create migrator: %v", err)
		}
		defer m.Close()

		if err := m.Steps(-1); err != nil {
			log.Fatalf("Failed to roll back: %v", err)
		}
		fmt.Println("Rolled back one migration")
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample organisations and learning areas",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		db, err := postgres.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := seed.Run(ctx, postgres.NewStore(db)); err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
		fmt.Println("Sample data loaded")
	},
}

func resolveDatabaseURL() string {
	if databaseURL != "" {
		return databaseURL
	}
	return config.Load().DatabaseURL()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
