package main

import (
	"github.com/spf13/cobra"

	"github.com/vedabase-tools/namamala/internal/cliout"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the located chapter catalog",
	Long: `List every chapter located in the corpus with its record-id span.
The catalog is also written to the home directory as chapters.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, db, _, err := openCorpus()
		if err != nil {
			return err
		}
		defer db.Close()

		chapters, err := db.Catalog(cmd.Context())
		if err != nil {
			return err
		}
		return cliout.Output(chapters)
	},
}
