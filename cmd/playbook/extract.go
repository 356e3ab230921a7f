package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/playbook/internal/docsource"
	"github.com/cognicore/playbook/pkg/playbook"
	"github.com/cognicore/playbook/pkg/playbook/export"
	"github.com/cognicore/playbook/pkg/playbook/ingest"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract records from playbook documents as JSON",
	Long:  "Reads a document, a JSONL bundle or a directory of documents and writes the extracted tasks, milestones, templates and tips as one JSON result.",
	RunE:  runExtract,
}

// docFlags are shared by every command that reads documents.
type docFlags struct {
	input       string
	kind        string
	platform    string
	niche       string
	concurrency int
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "in", "i", "", "Document file, JSONL bundle or directory (required)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "Document kind: roadmap, templates or guide (default: inferred from file name)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Platform scope: youtube, tiktok, twitch or all (default: inferred from file name)")
	cmd.Flags().StringVar(&f.niche, "niche", "", "Niche the documents are written for")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", runtime.NumCPU(), "Documents extracted in parallel")
}

// extract loads the documents named by the flags and runs the pipeline.
// Documents that fail validation are logged and left out of the result.
func (f *docFlags) extract(ctx context.Context) (*playbook.Result, error) {
	if f.kind != "" {
		switch ingest.Kind(f.kind) {
		case ingest.KindRoadmap, ingest.KindTemplates, ingest.KindGuide:
		default:
			return nil, fmt.Errorf("unknown kind %q", f.kind)
		}
	}
	if f.platform != "" && !ingest.ValidScope(f.platform) {
		return nil, fmt.Errorf("unknown platform %q", f.platform)
	}

	docs, err := docsource.Load(f.input, docsource.Options{
		Kind:   ingest.Kind(f.kind),
		Scope:  f.platform,
		Niche:  f.niche,
		Logger: logger,
	})
	if err != nil {
		if len(docs) == 0 {
			return nil, err
		}
		logger.Warn("some documents could not be loaded", zap.Error(err))
	}
	logger.Info("loaded documents", zap.String("in", f.input), zap.Int("count", len(docs)))

	p := playbook.New(playbook.Options{
		Catalog:     catalog,
		Logger:      logger,
		Concurrency: f.concurrency,
	})
	res, err := p.ParseAll(ctx, docs)
	if err != nil {
		if res == nil {
			return nil, err
		}
		logger.Warn("some documents were skipped", zap.Error(err))
	}
	return res, nil
}

var (
	extractFlags  docFlags
	extractOutput string
)

func init() {
	extractFlags.register(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := extractCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	res, err := extractFlags.extract(cmd.Context())
	if err != nil {
		return err
	}

	if extractOutput == "" {
		return export.Write(cmd.OutOrStdout(), res)
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(extractOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(extractOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.Write(f, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", res.Len(), extractOutput)
	return nil
}
