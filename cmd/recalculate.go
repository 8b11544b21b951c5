package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recalcOwner string

// recalculateCmd resolves composite costs from the command line.
var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Recalculate composite item costs",
	Long: `Walks every recipe graph of the owner's catalog and refreshes the
cached cost of each composite item. Cycles and unresolvable components are
reported, not fatal.`,
	RunE: runRecalculate,
}

func init() {
	recalculateCmd.Flags().StringVar(&recalcOwner, "owner", "", "Catalog owner (required)")
	_ = recalculateCmd.MarkFlagRequired("owner")
	RootCmd.AddCommand(recalculateCmd)
}

func runRecalculate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	resolver := catalog.NewResolver(catalog.NewStore(db), l)
	result, err := resolver.Recalculate(ctx, recalcOwner)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		l.Warn("Recipe warning", zap.String("warning", warning))
	}
	if len(result.CycleItemIDs) > 0 {
		l.Warn("Recipe cycles detected", zap.Int64s("itemIds", result.CycleItemIDs))
	}
	l.Info("Recalculation finished",
		zap.String("owner", recalcOwner),
		zap.Int("updated", result.Updated))
	return nil
}
