package main

import (
	"github.com/spf13/cobra"

	"github.com/vedabase-tools/namamala/internal/cliout"
	"github.com/vedabase-tools/namamala/version"
)

var (
	cfgFile      string
	homeDir      string
	dbPath       string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "namamala",
	Short: "Mine the vedabase corpus for beautiful Sanskrit names with LLM extraction",
	Long: `Namamala sweeps a hierarchically structured scriptural corpus (the
vedabase sqlite file) chapter by chapter, segments each chapter into verse
units, and extracts beautiful Sanskrit names with an LLM using
schema-validated structured output.

Extracted records accumulate in per-chapter JSON stores under the home
directory, deduplicated by normalized name; previously found names are
passed back to the model as an exclusion hint on repeated runs.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.namamala/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "namamala home directory (default: ~/.namamala)",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath, "db", "", "vedabase sqlite file (default: from config)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cliout.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(chapterCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(versesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
