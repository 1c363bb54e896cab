package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vedabase-tools/namamala/internal/vedabase"
)

var chapterCmd = &cobra.Command{
	Use:   "chapter <canto> <chapter>",
	Short: "Extract names from a single chapter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		canto, chapter, err := parseChapterArgs(args)
		if err != nil {
			return err
		}

		svc, err := buildServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.pipeline.Chapter(cmd.Context(), canto, chapter); err != nil {
			if errors.Is(err, vedabase.ErrChapterNotFound) {
				return fmt.Errorf("canto %d chapter %d does not exist in the corpus", canto, chapter)
			}
			return err
		}
		return nil
	},
}

func parseChapterArgs(args []string) (int, int, error) {
	canto, err := strconv.Atoi(args[0])
	if err != nil || canto < 1 {
		return 0, 0, fmt.Errorf("invalid canto %q", args[0])
	}
	chapter, err := strconv.Atoi(args[1])
	if err != nil || chapter < 1 {
		return 0, 0, fmt.Errorf("invalid chapter %q", args[1])
	}
	return canto, chapter, nil
}
