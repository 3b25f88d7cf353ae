package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tmxmine/config"
	"tmxmine/internal/adapter/runstore"
	"tmxmine/internal/adapter/sink"
	"tmxmine/internal/adapter/telemetry"
	"tmxmine/internal/adapter/tmx"
	"tmxmine/internal/domain"
	"tmxmine/internal/port"
	"tmxmine/internal/usecase"
)

var (
	extractOutput     string
	extractKeywords   []string
	extractSourceLang string
	extractTargetLang string
	extractScope      string
	extractCaseSens   bool
	extractFormat     string
	extractNoHistory  bool
	extractQuiet      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.tmx>",
	Short: "Extract keyword-matching pairs from one TMX file",
	Long: `Stream a TMX file and write every translation unit matching one of the
configured keywords to a CSV (or XLSX) file. Gzip-compressed input
(.tmx.gz) is decompressed on the fly.

Examples:
  tmxmine extract corpus.tmx -k herria -k hola
  tmxmine extract corpus.tmx.gz -k Euskara --case-sensitive --scope both
  tmxmine extract corpus.tmx -k hola -o matches.xlsx --format xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default <input>_matches.<format>)")
	extractCmd.Flags().StringSliceVarP(&extractKeywords, "keyword", "k", nil, "keyword to search for (repeatable)")
	extractCmd.Flags().StringVar(&extractSourceLang, "source-lang", "", "source language code (default from config)")
	extractCmd.Flags().StringVar(&extractTargetLang, "target-lang", "", "target language code (default from config)")
	extractCmd.Flags().StringVar(&extractScope, "scope", "", "match scope: source, target or both (default from config)")
	extractCmd.Flags().BoolVar(&extractCaseSens, "case-sensitive", false, "match keywords case-sensitively")
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "output format: csv or xlsx (default from config)")
	extractCmd.Flags().BoolVar(&extractNoHistory, "no-history", false, "do not record this run in the history db")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "suppress progress output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	ec := resolveExtractConfig(cmd, GetConfig())

	if len(ec.Keywords) == 0 {
		return fmt.Errorf("no keywords configured: pass -k or set extract.keywords in the config file")
	}

	scope, err := domain.ParseMatchScope(ec.MatchScope)
	if err != nil {
		return err
	}

	output := extractOutput
	if output == "" {
		output = deriveOutputPath(input, ec.Format)
	}

	it, err := tmx.NewIterator(input, ec.SourceLang, ec.TargetLang)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	defer it.Close()

	snk, err := newSink(ec.Format, output, ec.SourceLang, ec.TargetLang)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var tel port.Telemetry = telemetry.NewProgress()
	if extractQuiet {
		tel = telemetry.Nop{}
	}

	uc := usecase.NewExtractUseCase(tel, ec.ProgressInterval)
	opts := domain.FilterOptions{
		Keywords:      ec.Keywords,
		CaseSensitive: ec.CaseSensitive,
		Scope:         scope,
	}

	started := time.Now()
	res, err := uc.Extract(it, snk, opts)
	if err != nil {
		snk.Close()
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := snk.Close(); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	printResult(res, ec.Keywords)

	if GetConfig().History.Enabled && !extractNoHistory {
		recordRun(input, ec, res, started)
	}

	return nil
}

// resolveExtractConfig applies flag overrides on top of the loaded config.
func resolveExtractConfig(cmd *cobra.Command, cfg *config.Config) config.ExtractConfig {
	ec := cfg.Extract

	if len(extractKeywords) > 0 {
		ec.Keywords = extractKeywords
	}
	if extractSourceLang != "" {
		ec.SourceLang = extractSourceLang
	}
	if extractTargetLang != "" {
		ec.TargetLang = extractTargetLang
	}
	if extractScope != "" {
		ec.MatchScope = extractScope
	}
	if extractFormat != "" {
		ec.Format = extractFormat
	}
	if cmd.Flags().Changed("case-sensitive") {
		ec.CaseSensitive = extractCaseSens
	}

	return ec
}

func newSink(format, path, sourceLang, targetLang string) (port.RowSink, error) {
	switch format {
	case "", "csv":
		return sink.NewCSVSink(path, sourceLang, targetLang)
	case "xlsx":
		return sink.NewXLSXSink(path, sourceLang, targetLang)
	default:
		return nil, fmt.Errorf("unsupported output format %q (want csv or xlsx)", format)
	}
}

// deriveOutputPath turns corpus.tmx or corpus.tmx.gz into
// corpus_matches.csv (or .xlsx) next to the working directory.
func deriveOutputPath(input, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := "csv"
	if format == "xlsx" {
		ext = "xlsx"
	}
	return base + "_matches." + ext
}

func printResult(res *domain.ExtractionResult, keywords []string) {
	fmt.Printf("\nExtraction results:\n")
	fmt.Printf("  Units scanned:  %d\n", res.TotalUnits)
	fmt.Printf("  Units matched:  %d\n", res.MatchedUnits)

	seen := make(map[string]bool)
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		fmt.Printf("  %-20s %d\n", kw+":", res.KeywordCounts[kw])
	}

	fmt.Printf("\nOutput written to: %s\n", res.OutputPath)
}

// recordRun stores the run in the history db. History failures are
// reported as warnings, never as run failures.
func recordRun(input string, ec config.ExtractConfig, res *domain.ExtractionResult, started time.Time) {
	st, err := runstore.NewBoltStore(historyPath(GetConfig()))
	if err != nil {
		fmt.Printf("Warning: failed to open history db: %v\n", err)
		return
	}
	defer st.Close()

	rec := domain.RunRecord{
		ID:           started.UTC().Format(time.RFC3339Nano),
		InputPath:    input,
		OutputPath:   res.OutputPath,
		SourceLang:   ec.SourceLang,
		TargetLang:   ec.TargetLang,
		Keywords:     ec.Keywords,
		TotalUnits:   res.TotalUnits,
		MatchedUnits: res.MatchedUnits,
		Counts:       res.KeywordCounts,
		StartedAt:    started,
		Duration:     time.Since(started),
	}
	if err := st.PutRun(rec); err != nil {
		fmt.Printf("Warning: failed to record run: %v\n", err)
	}
}
