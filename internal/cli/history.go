package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tmxmine/internal/adapter/runstore"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past extraction runs",
	Long: `List the extraction runs recorded in the local history database,
newest first.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := historyPath(GetConfig())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No run history found.")
		return nil
	}

	st, err := runstore.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if historyJSON {
		output, _ := json.MarshalIndent(runs, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No run history found.")
		return nil
	}

	// Newest first.
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		fmt.Printf("%s  %s -> %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.InputPath, r.OutputPath)
		fmt.Printf("    %s->%s  keywords: %s  matched %d/%d units in %s\n",
			r.SourceLang, r.TargetLang, strings.Join(r.Keywords, "|"),
			r.MatchedUnits, r.TotalUnits, r.Duration.Round(time.Millisecond))
	}

	return nil
}
