package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/archive"
	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/stock"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var stockOwner string

// stockCmd mirrors remote stock levels from the command line.
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Sync remote stock levels into the local catalog",
	Long: `Pages through the remote store catalog and copies stock levels onto
local variants matched by SKU. Rows are only updated, never inserted.`,
	RunE: runStock,
}

func init() {
	stockCmd.Flags().StringVar(&stockOwner, "owner", "", "Catalog owner (required)")
	_ = stockCmd.MarkFlagRequired("owner")
	RootCmd.AddCommand(stockCmd)
}

func runStock(cmd *cobra.Command, args []string) error {
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

	if cfg.Remote.StoreID == "" {
		return fmt.Errorf("remote store is not configured")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	archiver, err := archive.New(cfg.Archive)
	if err != nil {
		return fmt.Errorf("failed to create report archive: %w", err)
	}

	svc := stock.NewService(catalog.NewStore(db), remote.NewClient(cfg.Remote), cfg.Remote, archiver, l)
	summary, err := svc.Sync(ctx, stockOwner)
	if err != nil {
		return err
	}

	l.Info("Stock sync finished",
		zap.Int("remoteVariantsSeen", summary.RemoteVariantsSeen),
		zap.Int("localVariantsWithSku", summary.LocalVariantsWithSK),
		zap.Int("matchedBySku", summary.MatchedBySKU),
		zap.Int("rowsWritten", summary.RowsWritten))
	return nil
}
