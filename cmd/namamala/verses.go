package main

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/vedabase-tools/namamala/internal/cliout"
	"github.com/vedabase-tools/namamala/internal/vedabase"
)

var versesFull bool

// verseSummary previews one segmented verse unit.
type verseSummary struct {
	Unit  string `json:"unit" yaml:"unit"`
	Chars int    `json:"chars" yaml:"chars"`
}

var versesCmd = &cobra.Command{
	Use:   "verses <canto> <chapter>",
	Short: "Show a chapter's segmented verse units",
	Long: `Segment a chapter into verse units and print them. By default each
unit is truncated to a preview; use --full for the complete text.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		canto, chapter, err := parseChapterArgs(args)
		if err != nil {
			return err
		}

		_, _, db, _, err := openCorpus()
		if err != nil {
			return err
		}
		defer db.Close()

		span, err := db.Locate(cmd.Context(), canto, chapter)
		if err != nil {
			if errors.Is(err, vedabase.ErrChapterNotFound) {
				return fmt.Errorf("canto %d chapter %d does not exist in the corpus", canto, chapter)
			}
			return err
		}

		verses, err := db.Verses(cmd.Context(), span)
		if err != nil {
			return err
		}

		if versesFull {
			return cliout.Output(verses)
		}

		summaries := make([]verseSummary, 0, len(verses))
		for _, v := range verses {
			summaries = append(summaries, summarize(v))
		}
		return cliout.Output(summaries)
	},
}

// summarize previews one unit. Chars counts runes, not bytes, so the
// figure matches what the truncation operates on.
func summarize(v string) verseSummary {
	return verseSummary{
		Unit:  truncate(v, 80),
		Chars: utf8.RuneCountInString(v),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func init() {
	versesCmd.Flags().BoolVar(&versesFull, "full", false, "print complete verse units")
}
