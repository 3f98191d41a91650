package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skawahara/kioku/internal/cli"
	"github.com/skawahara/kioku/internal/course"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the progress of every active course and lexicon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			courses, err := course.LoadCourses(cfg.CoursesDirectory())
			if err != nil {
				return err
			}
			lexicons, err := course.LoadLexicons(cfg.LexiconsDirectory())
			if err != nil {
				return err
			}

			baseCLI := cli.NewInteractiveCLI()

			courseIDs := make([]string, 0, len(courses))
			for id := range courses {
				courseIDs = append(courseIDs, id)
			}
			sort.Strings(courseIDs)
			for _, id := range courseIDs {
				c := courses[id]
				if !c.Active() {
					continue
				}
				courseLearning, err := openLearning(cfg, c)
				if err != nil {
					return err
				}
				baseCLI.RenderCourseStats(id, courseLearning)
			}

			lexiconIDs := make([]string, 0, len(lexicons))
			for id := range lexicons {
				lexiconIDs = append(lexiconIDs, id)
			}
			sort.Strings(lexiconIDs)
			if len(lexiconIDs) > 0 {
				fmt.Println()
			}
			for _, id := range lexiconIDs {
				lex, err := openLexicon(cfg, lexicons[id])
				if err != nil {
					return err
				}
				baseCLI.RenderLexiconStats(id, lex)
			}
			return nil
		},
	}
}
