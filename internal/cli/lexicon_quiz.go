package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/skawahara/kioku/internal/course"
	"github.com/skawahara/kioku/internal/frequency"
	"github.com/skawahara/kioku/internal/lexicon"
)

// ratePrecision is the number of unknown answers a knowledge rate estimate
// is based on.
const ratePrecision = 100

// LexiconQuizConfig wires one lexicon check session. A nil Now means the
// system clock.
type LexiconQuizConfig struct {
	Definition    course.LexiconDefinition
	Lexicon       *lexicon.Lexicon
	FrequencyList *frequency.List
	Rand          *rand.Rand
	Now           func() time.Time
}

// LexiconQuizCLI manages the interactive lexicon check session for one
// language.
type LexiconQuizCLI struct {
	*InteractiveCLI
	definition    course.LexiconDefinition
	lexicon       *lexicon.Lexicon
	frequencyList *frequency.List
	rng           *rand.Rand
	now           func() time.Time

	// topIndex is the cursor of the top selection strategy.
	topIndex int
	// asked holds the words already answered in this session.
	asked map[string]struct{}
}

// NewLexiconQuizCLI creates a new lexicon check CLI.
func NewLexiconQuizCLI(baseCLI *InteractiveCLI, config LexiconQuizConfig) *LexiconQuizCLI {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &LexiconQuizCLI{
		InteractiveCLI: baseCLI,
		definition:     config.Definition,
		lexicon:        config.Lexicon,
		frequencyList:  config.FrequencyList,
		rng:            config.Rand,
		now:            now,
		asked:          map[string]struct{}{},
	}
}

// Check runs the session inside a recorded lexicon session and persists the
// log when it finishes.
func (r *LexiconQuizCLI) Check(ctx context.Context) error {
	r.lexicon.StartSession()
	defer func() {
		r.lexicon.EndSession()
		_ = r.lexicon.Write()
	}()
	return r.Run(ctx, r)
}

func (r *LexiconQuizCLI) Session(ctx context.Context) error {
	if r.weeklyTargetReached() {
		fmt.Fprintln(r.stdoutWriter, "Enough checks for this week.")
		r.printRate()
		return errEnd
	}

	word, ok := r.pickWord()
	if !ok {
		fmt.Fprintln(r.stdoutWriter, "No more words to check.")
		r.printRate()
		return errEnd
	}

	answer, err := r.readAnswer(fmt.Sprintf(
		"%s  know [y], don't [n], proper noun [b], not a word [x], quit [q]; add ! to never ask again: ",
		r.bold.Sprint(word)))
	if err != nil {
		return err
	}

	toSkipForever := strings.HasSuffix(answer, "!")
	answer = strings.TrimSuffix(answer, "!")

	var response lexicon.Response
	switch answer {
	case "y":
		response = lexicon.ResponseKnow
	case "n":
		response = lexicon.ResponseDont
	case "b":
		response = lexicon.ResponseDontButProperNounToo
	case "x":
		response = lexicon.ResponseNotAWord
	case "q":
		r.printRate()
		return errEnd
	default:
		fmt.Fprintf(r.stdoutWriter, "Unknown answer %q.\n", answer)
		return nil
	}

	var toSkip *bool
	if toSkipForever {
		toSkip = &toSkipForever
	}
	r.lexicon.Register(word, response, toSkip, time.Time{}, lexicon.AnswerUser)
	if err := r.lexicon.Write(); err != nil {
		return fmt.Errorf("lexicon.Write() > %w", err)
	}
	r.asked[word] = struct{}{}

	r.printRate()
	return nil
}

// pickWord selects the next candidate word using the configured selection
// strategy. Words resolved by the skip and propagation rules are recorded
// without asking and the selection moves on.
func (r *LexiconQuizCLI) pickWord() (string, bool) {
	if r.frequencyList == nil || r.frequencyList.Len() == 0 {
		return "", false
	}

	switch r.definition.Selection {
	case course.SelectionTop:
		for ; r.topIndex < r.frequencyList.Len(); r.topIndex++ {
			entry, _ := r.frequencyList.WordByIndex(r.topIndex)
			if candidate, ok := r.tryCandidate(entry.Word); ok {
				return candidate, true
			}
		}
		return "", false
	default:
		for range maxNewWordAttempts {
			var (
				entry frequency.Entry
				ok    bool
			)
			if r.definition.Selection == course.SelectionRandom {
				entry, ok = r.frequencyList.RandomWord(r.rng)
			} else {
				entry, ok = r.frequencyList.RandomWordByFrequency(r.rng)
			}
			if !ok {
				return "", false
			}
			if candidate, ok := r.tryCandidate(entry.Word); ok {
				return candidate, true
			}
		}
		return "", false
	}
}

func (r *LexiconQuizCLI) tryCandidate(word string) (string, bool) {
	if _, done := r.asked[word]; done {
		return "", false
	}
	if r.lexicon.DoSkip(word, r.definition.SkipKnown, r.definition.SkipUnknown) {
		// DoSkip registered a propagated answer; keep the log file in step.
		if err := r.lexicon.Write(); err != nil {
			fmt.Fprintf(r.stdoutWriter, "failed to write the lexicon log: %v\n", err)
		}
		r.asked[word] = struct{}{}
		return "", false
	}
	return word, true
}

// weeklyTargetReached reports whether this week already collected the
// configured number of unknown answers.
func (r *LexiconQuizCLI) weeklyTargetReached() bool {
	if r.definition.PrecisionPerWeek <= 0 {
		return false
	}
	weekAgo := r.now().Add(-7 * 24 * time.Hour)
	return r.lexicon.CountUnknowns(weekAgo, time.Time{}) >= r.definition.PrecisionPerWeek
}

func (r *LexiconQuizCLI) printRate() {
	if rate, ok := r.lexicon.LastRate(ratePrecision, time.Time{}); ok {
		fmt.Fprintf(r.stdoutWriter, "Knowledge rate: %.2f over %d words.\n", rate, r.lexicon.WordCount())
		return
	}
	if average, ok := r.lexicon.Average(); ok {
		fmt.Fprintf(r.stdoutWriter, "Unknown so far: %.0f%% of %d words.\n", average*100, r.lexicon.WordCount())
	}
}
