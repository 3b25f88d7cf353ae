package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"tmxmine/internal/adapter/fs"
	"tmxmine/internal/adapter/telemetry"
	"tmxmine/internal/adapter/tmx"
	"tmxmine/internal/domain"
	"tmxmine/internal/port"
	"tmxmine/internal/usecase"
)

var (
	batchOutputDir   string
	batchKeywords    []string
	batchSourceLang  string
	batchTargetLang  string
	batchScope       string
	batchCaseSens    bool
	batchFormat      string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract from every TMX file under a directory",
	Long: `Find TMX files under a directory using the configured include/exclude
globs and extract keyword matches from each one. Files are processed
with bounded concurrency; each output file is named after its input.

Examples:
  tmxmine batch ./corpora -k herria
  tmxmine batch ./corpora -k hola --out-dir results --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchOutputDir, "out-dir", "", "output directory (default from config)")
	batchCmd.Flags().StringSliceVarP(&batchKeywords, "keyword", "k", nil, "keyword to search for (repeatable)")
	batchCmd.Flags().StringVar(&batchSourceLang, "source-lang", "", "source language code (default from config)")
	batchCmd.Flags().StringVar(&batchTargetLang, "target-lang", "", "target language code (default from config)")
	batchCmd.Flags().StringVar(&batchScope, "scope", "", "match scope: source, target or both (default from config)")
	batchCmd.Flags().BoolVar(&batchCaseSens, "case-sensitive", false, "match keywords case-sensitively")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: csv or xlsx (default from config)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of files processed in parallel (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("corpus directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	cfg := GetConfig()
	ec := cfg.Extract
	if len(batchKeywords) > 0 {
		ec.Keywords = batchKeywords
	}
	if batchSourceLang != "" {
		ec.SourceLang = batchSourceLang
	}
	if batchTargetLang != "" {
		ec.TargetLang = batchTargetLang
	}
	if batchScope != "" {
		ec.MatchScope = batchScope
	}
	if batchFormat != "" {
		ec.Format = batchFormat
	}
	if cmd.Flags().Changed("case-sensitive") {
		ec.CaseSensitive = batchCaseSens
	}
	if len(ec.Keywords) == 0 {
		return fmt.Errorf("no keywords configured: pass -k or set extract.keywords in the config file")
	}

	scope, err := domain.ParseMatchScope(ec.MatchScope)
	if err != nil {
		return err
	}

	outDir := batchOutputDir
	if outDir == "" {
		outDir = cfg.Batch.OutputDir
	}
	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	extractUC := usecase.NewExtractUseCase(telemetry.Nop{}, ec.ProgressInterval)

	newIterator := func(path string) (port.PairIterator, error) {
		return tmx.NewIterator(path, ec.SourceLang, ec.TargetLang)
	}
	newSinkFor := func(input string) (port.RowSink, error) {
		out := filepath.Join(outDir, deriveOutputPath(input, ec.Format))
		return newSink(ec.Format, out, ec.SourceLang, ec.TargetLang)
	}

	opts := domain.FilterOptions{
		Keywords:      ec.Keywords,
		CaseSensitive: ec.CaseSensitive,
		Scope:         scope,
	}
	batchUC := usecase.NewBatchUseCase(walker, extractUC, newIterator, newSinkFor, opts, concurrency)

	fmt.Printf("Scanning %s...\n", root)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	progressCallback := func(processed, total int, file string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Extracting"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}

	result, err := batchUC.Run(root, progressCallback)
	if err != nil {
		return fmt.Errorf("batch extraction failed: %w", err)
	}

	totalUnits := 0
	matchedUnits := 0
	for _, res := range result.Results {
		totalUnits += res.TotalUnits
		matchedUnits += res.MatchedUnits
	}

	fmt.Printf("\nBatch complete:\n")
	fmt.Printf("  Files extracted: %d\n", len(result.Results))
	fmt.Printf("  Units scanned:   %d\n", totalUnits)
	fmt.Printf("  Units matched:   %d\n", matchedUnits)

	if len(result.Errors) > 0 {
		fmt.Printf("\nFailures:\n")
		sort.Strings(result.Errors)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nOutput written to: %s\n", outDir)
	return nil
}
