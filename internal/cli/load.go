package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"shop-analytics-service/internal/config"
	"shop-analytics-service/internal/records/adapters/store"
	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/ports"
	"shop-analytics-service/internal/records/core/usecase"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var ErrNotArray = errors.New("export is not a JSON array")

var (
	loadCollection string
	loadFile       string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Insert a JSON array export into a collection",
	Example: `  seed load --collection orders --file orders.json
  seed load --collection shopifyCustomers --file customers.json`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadCollection, "collection", "", "Target collection (customers, orders, products)")
	loadCmd.Flags().StringVar(&loadFile, "file", "", "Path to the JSON export")
	_ = loadCmd.MarkFlagRequired("collection")
	_ = loadCmd.MarkFlagRequired("file")
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if _, ok := domain.ParseCollection(loadCollection); !ok {
		return fmt.Errorf("%w: %q", usecase.ErrInvalidCollection, loadCollection)
	}

	raw, err := os.ReadFile(loadFile)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	repo, db, err := store.Open(ctx, store.Options{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
		Table:  cfg.Store.Table,
	})
	if err != nil {
		cancel()
		return err
	}
	defer db.Close()

	if cfg.Store.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			cancel()
			return err
		}
	}
	cancel()

	res, err := loadRecords(context.Background(), repo, loadCollection, raw, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "[INFO] %s: %d created, %d duplicates\n", loadCollection, res.Created, res.Duplicates)
	return nil
}

// loadRecords inserts every element of the exported array one by one so the
// bar tracks progress. A record that fails validation aborts the load.
func loadRecords(ctx context.Context, repo ports.RecordWriterPort, collection string, raw []byte, progress io.Writer) (usecase.BulkStoreRecordsResult, error) {
	var res usecase.BulkStoreRecordsResult

	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return res, fmt.Errorf("%w: %v", ErrNotArray, err)
	}

	uc := usecase.NewStoreRecordUseCase(repo)
	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("loading "+collection),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for i, doc := range docs {
		created, err := uc.Execute(ctx, usecase.StoreRecordInput{Collection: collection, Doc: doc})
		if err != nil {
			return res, fmt.Errorf("record %d: %w", i, err)
		}
		if created {
			res.Created++
		} else {
			res.Duplicates++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return res, nil
}
