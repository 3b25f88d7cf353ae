package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"tmxmine/internal/adapter/tmx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.tmx>",
	Short: "Show unit and language statistics for a TMX file",
	Long: `Stream a TMX file once without filtering and report how many
translation units it holds and which language tags its variants carry.
Useful for picking source/target language codes before extracting.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	sv, err := tmx.Survey(args[0])
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	fmt.Printf("Translation units: %d\n", sv.Units)
	fmt.Printf("Variants:          %d\n", sv.Variants)

	if len(sv.Languages) == 0 {
		return nil
	}

	langs := make([]string, 0, len(sv.Languages))
	for lang := range sv.Languages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if sv.Languages[langs[i]] != sv.Languages[langs[j]] {
			return sv.Languages[langs[i]] > sv.Languages[langs[j]]
		}
		return langs[i] < langs[j]
	})

	fmt.Printf("\nLanguages:\n")
	for _, lang := range langs {
		fmt.Printf("  %-12s %d\n", lang, sv.Languages[lang])
	}

	return nil
}
