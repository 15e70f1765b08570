// Command levelctl manages the level curve and grants XP from the shell,
// using the same services as the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// openDB is replaced in tests.
var openDB = func(cfg *config.Config) (*gorm.DB, error) {
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return database.DB, nil
}

// stack is the service set shared by every subcommand.
type stack struct {
	settings    *services.SettingsService
	levels      *services.LevelConfigService
	progression *services.ProgressionService
}

func newStack(db *gorm.DB, cfg *config.Config) *stack {
	settings := services.NewSettingsService(db, cfg)
	levels := services.NewLevelConfigService(db, settings)
	return &stack{
		settings:    settings,
		levels:      levels,
		progression: services.NewProgressionService(db, levels),
	}
}

func loadStack() (*stack, error) {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return newStack(db, cfg), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "levelctl",
		Short:         "Manage level thresholds and XP grants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newLevelsCmd(), newDefaultCmd(), newGrantCmd())
	return root
}

func main() {
	logging.Setup()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
