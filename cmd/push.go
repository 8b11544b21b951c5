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
	"catalog-manager/feature/push"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pushOwner     string
	pushProductID int64
)

// pushCmd pushes computed prices to the remote store from the command line.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push computed prices to the remote store",
	Long: `Prices every local variant and patches the matched remote variants.
With --product only that product's variants are pushed.`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushOwner, "owner", "", "Catalog owner (required)")
	pushCmd.Flags().Int64Var(&pushProductID, "product", 0, "Restrict the push to one local product id")
	_ = pushCmd.MarkFlagRequired("owner")
	RootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
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

	scope := push.ScopeAll
	var productID *int64
	if pushProductID > 0 {
		scope = push.ScopeProduct
		productID = &pushProductID
	}

	svc := push.NewService(catalog.NewStore(db), remote.NewClient(cfg.Remote), cfg.Remote, archiver, l)
	report, err := svc.Push(ctx, pushOwner, scope, productID)
	if err != nil {
		return err
	}

	l.Info("Push finished",
		zap.Bool("ok", report.OK),
		zap.Bool("partial", report.Partial),
		zap.Int("productsTouched", report.ProductsTouched),
		zap.Int("variantsUpdated", report.VariantsUpdated),
		zap.Int("failedProducts", len(report.FailedProducts)),
		zap.Int("missingInRemote", len(report.MissingInRemote)),
		zap.Int("skippedNoPrice", len(report.SkippedNoPrice)))

	if !report.OK {
		return fmt.Errorf("%d product patches failed", len(report.FailedProducts))
	}
	return nil
}
