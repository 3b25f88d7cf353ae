package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"tmxmine/config"
)

var (
	cfgFile string
	cfg     *config.Config
	workDir string
)

var rootCmd = &cobra.Command{
	Use:   "tmxmine",
	Short: "Mine keyword-matching sentence pairs from TMX translation memories",
	Long: `tmxmine streams very large TMX files one translation unit at a time,
extracts aligned source/target sentence pairs for a configured language
pair, filters them by keyword and writes the matches as CSV or XLSX.

Example usage:
  tmxmine extract corpus.tmx -k herria -k hola   # Extract matches from one file
  tmxmine batch ./corpora -k herria              # Extract from every TMX under a directory
  tmxmine inspect corpus.tmx                     # Show unit and language counts
  tmxmine history                                # List past extraction runs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if workDir == "" {
			workDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(workDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tmxmine.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", "", "working directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetWorkDir() string {
	return workDir
}

// historyPath resolves the history db location relative to the working
// directory unless configured as an absolute path.
func historyPath(cfg *config.Config) string {
	p := cfg.History.Path
	if p == "" {
		p = filepath.Join(".tmxmine", "history.db")
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(GetWorkDir(), p)
	}
	return p
}
