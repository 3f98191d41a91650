package cli

import (
	"fmt"
	"time"

	"github.com/skawahara/kioku/internal/frequency"
	"github.com/skawahara/kioku/internal/learning"
	"github.com/skawahara/kioku/internal/lexicon"
)

// RenderCourseStats prints the progress summary of one course.
func (cli *InteractiveCLI) RenderCourseStats(id string, courseLearning *learning.Learning) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", id)
	fmt.Fprintf(cli.stdoutWriter, "  learning:    %d\n", courseLearning.CountLearning())
	fmt.Fprintf(cli.stdoutWriter, "  to repeat:   %d\n", courseLearning.CountToRepeat(nil))
	fmt.Fprintf(cli.stdoutWriter, "  added today: %d\n", courseLearning.CountAddedToday())
	if nearest, ok := courseLearning.GetNearest(nil); ok {
		fmt.Fprintf(cli.stdoutWriter, "  next due:    %s\n", nearest.Format("2006-01-02 15:04"))
	}
}

// RenderLexiconStats prints the knowledge summary of one lexicon.
func (cli *InteractiveCLI) RenderLexiconStats(id string, lex *lexicon.Lexicon) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", id)
	fmt.Fprintf(cli.stdoutWriter, "  words answered: %d\n", lex.WordCount())
	if average, ok := lex.Average(); ok {
		fmt.Fprintf(cli.stdoutWriter, "  unknown:        %.0f%%\n", average*100)
	}
	if rate, ok := lex.LastRate(ratePrecision, time.Time{}); ok {
		fmt.Fprintf(cli.stdoutWriter, "  rate:           %.2f\n", rate)
	}
	points := lex.ComputeRate(ratePrecision, time.Time{})
	if len(points) > 5 {
		points = points[len(points)-5:]
	}
	for _, point := range points {
		fmt.Fprintf(cli.stdoutWriter, "    %s  %.2f\n",
			point.To.Format("2006-01-02"), point.Rate)
	}
	fmt.Fprintf(cli.stdoutWriter, "  sessions:       %d\n", len(lex.Sessions()))
}

// RenderTopUnknown prints the most frequent words the user answered as
// unknown, as candidates worth learning next.
func (cli *InteractiveCLI) RenderTopUnknown(lex *lexicon.Lexicon, list *frequency.List, limit int) {
	unknown := lex.UnknownWords()
	if list != nil {
		unknown = list.SortByFrequency(unknown)
	}
	if len(unknown) > limit {
		unknown = unknown[:limit]
	}
	if len(unknown) == 0 {
		return
	}
	fmt.Fprintf(cli.stdoutWriter, "  most frequent unknown words:\n")
	for _, word := range unknown {
		fmt.Fprintf(cli.stdoutWriter, "    %s\n", word)
	}
}
