package cmd

// The sync command runs the S3 connector: it lists documentation pages
// in a bucket, converts and splits each one, and writes document
// batches as JSON.

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cabify/techdocs/connector"
	"github.com/cabify/techdocs/core"
	"github.com/cabify/techdocs/core/output"
	"github.com/cabify/techdocs/core/split"
)

var (
	flagBucket    string
	flagPrefix    string
	flagRegion    string
	flagBatchSize int
	flagDocsURL   string
	flagSyncMode  string
	flagSyncDir   string
	flagSince     string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Ingest TechDocs pages from an S3 bucket",
	Long: `Sync lists index.html objects in the bucket, converts each page to
markdown sections, and writes document batches as JSON files.

Examples:
  techdocs sync --bucket techdocs-site
  techdocs sync --bucket techdocs-site --prefix teams/payments --batch-size 25
  techdocs sync --bucket techdocs-site --since 2026-01-01 --output_dir ./out`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&flagBucket, "bucket", "", "S3 bucket holding the published site (required)")
	syncCmd.Flags().StringVar(&flagPrefix, "prefix", "", "Key prefix to restrict the listing")
	syncCmd.Flags().StringVar(&flagRegion, "region", "", "AWS region (default: SDK resolution)")
	syncCmd.Flags().IntVar(&flagBatchSize, "batch-size", 10, "Documents per emitted batch")
	syncCmd.Flags().StringVar(&flagDocsURL, "docs-url", connector.DefaultDocsBaseURL, "Base URL of the documentation portal")
	syncCmd.Flags().StringVar(&flagSyncMode, "mode", "hierarchical", "Splitting mode: hierarchical or flat")
	syncCmd.Flags().StringVar(&flagSyncDir, "output_dir", "", "Output directory (default: current directory)")
	syncCmd.Flags().StringVar(&flagSince, "since", "", "Only pages modified on/after this date (YYYY-MM-DD)")

	_ = syncCmd.MarkFlagRequired("bucket")
}

func runSync(cmd *cobra.Command, args []string) error {
	mode, err := split.ParseMode(flagSyncMode)
	if err != nil {
		return err
	}

	var start time.Time
	if flagSince != "" {
		start, err = time.Parse("2006-01-02", flagSince)
		if err != nil {
			return fmt.Errorf("invalid --since date: %w", err)
		}
	}

	ctx := cmd.Context()
	source, err := connector.NewS3Source(ctx, flagBucket, connector.S3Options{Region: flagRegion})
	if err != nil {
		return err
	}

	writer, err := output.New(flagSyncDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	conn := connector.New(source, connector.Config{
		Bucket:      flagBucket,
		Prefix:      flagPrefix,
		BatchSize:   flagBatchSize,
		DocsBaseURL: flagDocsURL,
		Mode:        mode,
	})

	batchNum := 0
	err = conn.Sync(ctx, start, time.Time{}, func(batch []core.Document) error {
		batchNum++
		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling batch %d: %w", batchNum, err)
		}
		path, err := writer.WritePage(fmt.Sprintf("batch-%04d", batchNum), data, ".json")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s (%d documents)\n", path, len(batch))
		return nil
	})
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if batchNum == 0 {
		fmt.Fprintln(os.Stdout, "No documentation pages found")
	}
	return nil
}
