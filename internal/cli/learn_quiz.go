package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/skawahara/kioku/internal/course"
	"github.com/skawahara/kioku/internal/dictionary"
	"github.com/skawahara/kioku/internal/frequency"
	"github.com/skawahara/kioku/internal/learning"
	"github.com/skawahara/kioku/internal/lexicon"
	"github.com/skawahara/kioku/internal/sentence"
)

const (
	maxSentenceLength  = 120
	maxNewWordAttempts = 10000
)

// LearnQuizConfig wires one learning session. Optional resources may be nil
// and degrade to fewer hints and no new words.
type LearnQuizConfig struct {
	Course        course.Course
	Learning      *learning.Learning
	CheckLexicon  *lexicon.Lexicon
	FrequencyList *frequency.List
	Sentences     *sentence.Repository
	Dictionary    dictionary.Dictionary
	Rand          *rand.Rand
	MaxNewPerDay  int
}

// LearnQuizCLI manages the interactive repetition session for one course.
type LearnQuizCLI struct {
	*InteractiveCLI
	course        course.Course
	learning      *learning.Learning
	checkLexicon  *lexicon.Lexicon
	frequencyList *frequency.List
	sentences     *sentence.Repository
	dictionary    dictionary.Dictionary
	rng           *rand.Rand
	maxNewPerDay  int

	// skip holds questions postponed for the rest of the session.
	skip map[string]struct{}
}

// NewLearnQuizCLI creates a new learning session CLI.
func NewLearnQuizCLI(baseCLI *InteractiveCLI, config LearnQuizConfig) *LearnQuizCLI {
	return &LearnQuizCLI{
		InteractiveCLI: baseCLI,
		course:         config.Course,
		learning:       config.Learning,
		checkLexicon:   config.CheckLexicon,
		frequencyList:  config.FrequencyList,
		sentences:      config.Sentences,
		dictionary:     config.Dictionary,
		rng:            config.Rand,
		maxNewPerDay:   config.MaxNewPerDay,
		skip:           map[string]struct{}{},
	}
}

func (r *LearnQuizCLI) Session(ctx context.Context) error {
	questionID, ok := r.learning.GetNext(r.skip)
	if !ok {
		questionID, ok = r.pickNewWord()
	}
	if !ok {
		if nearest, found := r.learning.GetNearest(r.skip); found {
			fmt.Fprintf(r.stdoutWriter, "Nothing to repeat now. The next question is due at %s.\n",
				nearest.Format("15:04 on Jan 2"))
		} else {
			fmt.Fprintln(r.stdoutWriter, "Nothing to repeat or learn.")
		}
		return errEnd
	}
	return r.ask(ctx, questionID)
}

// pickNewWord draws words from the frequency list until it finds one that is
// neither scheduled already nor resolved by the check lexicon. Words the
// lexicon marks as known are registered as initially known instead of being
// scheduled.
func (r *LearnQuizCLI) pickNewWord() (string, bool) {
	if r.frequencyList == nil || r.frequencyList.Len() == 0 {
		return "", false
	}
	if r.maxNewPerDay <= 0 || r.learning.CountAddedToday() >= r.maxNewPerDay {
		return "", false
	}

	for range maxNewWordAttempts {
		entry, ok := r.frequencyList.RandomWordByFrequency(r.rng)
		if !ok {
			return "", false
		}
		word := entry.Word
		if r.learning.Has(word) {
			continue
		}
		if _, skipped := r.skip[word]; skipped {
			continue
		}
		if r.checkLexicon != nil {
			if knowledge, answered := r.checkLexicon.Get(word); answered {
				if knowledge.Knowing == lexicon.ResponseNotAWord {
					continue
				}
				if r.checkLexicon.Know(word) {
					r.learning.Register(learning.ResponseRight, 0, word, 0, time.Time{})
					if err := r.learning.Write(); err != nil {
						slog.Default().Warn("failed to record an initially known word",
							"word", word, "error", err)
					}
					continue
				}
			}
		}
		return word, true
	}
	return "", false
}

func (r *LearnQuizCLI) ask(ctx context.Context, questionID string) error {
	knowledge, _ := r.learning.Knowledge(questionID)

	example := r.exampleSentence(ctx, questionID)
	fmt.Fprintf(r.stdoutWriter, "%d to repeat, %d learning, %d added today\n",
		r.learning.CountToRepeat(r.skip), r.learning.CountLearning(), r.learning.CountAddedToday())
	if example != nil {
		fmt.Fprintf(r.stdoutWriter, "  %s\n", r.emphasizeWord(example.Text, questionID))
	}

	answer, err := r.readAnswer(fmt.Sprintf("%s [y(es)/n(o)/s(kip)/q(uit)]: ", r.bold.Sprint(questionID)))
	if err != nil {
		return err
	}

	var response learning.Response
	switch answer {
	case "y":
		response = learning.ResponseRight
	case "n":
		response = learning.ResponseWrong
	case "s":
		response = learning.ResponseSkip
	case "q":
		return errEnd
	default:
		fmt.Fprintf(r.stdoutWriter, "Unknown answer %q.\n", answer)
		return nil
	}

	sentenceID := 0
	if example != nil {
		sentenceID = int(example.ID)
	}
	interval := learning.NextInterval(knowledge.Interval, response)
	r.learning.Register(response, sentenceID, questionID, interval, time.Time{})
	if err := r.learning.Write(); err != nil {
		return fmt.Errorf("learning.Write() > %w", err)
	}

	if response == learning.ResponseSkip {
		r.skip[questionID] = struct{}{}
		return nil
	}

	if response == learning.ResponseRight {
		color.Green("Right. Next time in %s.", formatInterval(interval))
	} else {
		color.Red("Wrong. Again in %s.", formatInterval(interval))
		r.showDefinitions(ctx, questionID)
	}
	if example != nil {
		for _, translation := range example.Translations {
			fmt.Fprintf(r.stdoutWriter, "  %s\n", r.italic.Sprint(translation))
		}
	}
	fmt.Fprintln(r.stdoutWriter)
	return nil
}

// exampleSentence returns a fresh example for the question, preferring
// sentences that were not shown for it before. Corpus failures degrade to no
// example.
func (r *LearnQuizCLI) exampleSentence(ctx context.Context, questionID string) *sentence.Sentence {
	var excludedIDs []int64
	for _, record := range r.learning.Records() {
		if record.QuestionID == questionID && record.SentenceID != 0 {
			excludedIDs = append(excludedIDs, int64(record.SentenceID))
		}
	}

	sentences, err := r.sentences.FilterByWord(ctx, strings.ToLower(questionID), excludedIDs, maxSentenceLength, 1)
	if err != nil {
		slog.Default().Warn("sentence lookup failed", "word", questionID, "error", err)
		return nil
	}
	if len(sentences) == 0 {
		// All short sentences were shown already; repeat one.
		sentences, err = r.sentences.FilterByWord(ctx, strings.ToLower(questionID), nil, maxSentenceLength, 1)
		if err != nil || len(sentences) == 0 {
			return nil
		}
	}
	return &sentences[0]
}

func (r *LearnQuizCLI) showDefinitions(ctx context.Context, questionID string) {
	if r.dictionary == nil {
		return
	}
	item, err := r.dictionary.GetItem(ctx, strings.ToLower(questionID))
	if err != nil {
		slog.Default().Warn("dictionary lookup failed", "word", questionID, "error", err)
		return
	}
	if item == nil {
		return
	}
	for _, meaning := range item.Meanings {
		fmt.Fprintf(r.stdoutWriter, "  %s\n", meaning.PartOfSpeech)
		for _, definition := range meaning.Definitions {
			fmt.Fprintf(r.stdoutWriter, "    %s\n", r.italic.Sprint(definition))
		}
	}
}

// emphasizeWord renders every occurrence of the word in bold.
func (r *LearnQuizCLI) emphasizeWord(text, word string) string {
	lowerText := strings.ToLower(text)
	lowerWord := strings.ToLower(word)
	var builder strings.Builder
	for {
		index := strings.Index(lowerText, lowerWord)
		if index < 0 {
			builder.WriteString(text)
			return builder.String()
		}
		builder.WriteString(text[:index])
		builder.WriteString(r.bold.Sprint(text[index : index+len(word)]))
		text = text[index+len(word):]
		lowerText = lowerText[index+len(lowerWord):]
	}
}

func formatInterval(interval time.Duration) string {
	switch {
	case interval >= 24*time.Hour:
		days := int(interval / (24 * time.Hour))
		if days == 1 {
			return "a day"
		}
		return fmt.Sprintf("%d days", days)
	case interval >= time.Hour:
		return fmt.Sprintf("%d hours", int(interval/time.Hour))
	default:
		return fmt.Sprintf("%d minutes", int(interval/time.Minute))
	}
}
