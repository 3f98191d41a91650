package cli

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/kioku/internal/frequency"
	"github.com/skawahara/kioku/internal/language"
	"github.com/skawahara/kioku/internal/learning"
	"github.com/skawahara/kioku/internal/lexicon"
)

func newTestLearning(t *testing.T) *learning.Learning {
	t.Helper()
	return learning.New(filepath.Join(t.TempDir(), "de.json"))
}

func TestLearnQuizCLI_Session_RepeatDueQuestion(t *testing.T) {
	courseLearning := newTestLearning(t)
	courseLearning.Register(learning.ResponseWrong, 0, "haus", 5*time.Minute, time.Now().Add(-time.Hour))

	cli, output := newTestCLI("y\n")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{Learning: courseLearning})

	require.NoError(t, quiz.Session(context.Background()))

	records := courseLearning.Records()
	require.Len(t, records, 2)
	assert.Equal(t, learning.ResponseRight, records[1].Response)
	assert.Equal(t, 8*time.Hour, records[1].Interval.Duration)
	assert.Contains(t, output.String(), "haus")
	assert.Contains(t, output.String(), "1 to repeat")
}

func TestLearnQuizCLI_Session_SkipPostponesForSession(t *testing.T) {
	courseLearning := newTestLearning(t)
	courseLearning.Register(learning.ResponseWrong, 0, "haus", 5*time.Minute, time.Now().Add(-time.Hour))

	cli, _ := newTestCLI("s\n")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{Learning: courseLearning})

	require.NoError(t, quiz.Session(context.Background()))

	records := courseLearning.Records()
	require.Len(t, records, 2)
	assert.Equal(t, learning.ResponseSkip, records[1].Response)
	// A skip keeps the previous interval.
	assert.Equal(t, 5*time.Minute, records[1].Interval.Duration)

	_, ok := courseLearning.GetNext(quiz.skip)
	assert.False(t, ok)
}

func TestLearnQuizCLI_Session_Quit(t *testing.T) {
	courseLearning := newTestLearning(t)
	courseLearning.Register(learning.ResponseWrong, 0, "haus", 5*time.Minute, time.Now().Add(-time.Hour))

	cli, _ := newTestCLI("q\n")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{Learning: courseLearning})

	assert.ErrorIs(t, quiz.Session(context.Background()), errEnd)
	assert.Len(t, courseLearning.Records(), 1)
}

func TestLearnQuizCLI_Session_UnknownAnswerAsksAgain(t *testing.T) {
	courseLearning := newTestLearning(t)
	courseLearning.Register(learning.ResponseWrong, 0, "haus", 5*time.Minute, time.Now().Add(-time.Hour))

	cli, output := newTestCLI("zz\n")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{Learning: courseLearning})

	require.NoError(t, quiz.Session(context.Background()))
	assert.Len(t, courseLearning.Records(), 1)
	assert.Contains(t, output.String(), "Unknown answer")
}

func TestLearnQuizCLI_Session_NothingToDo(t *testing.T) {
	cli, output := newTestCLI("")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{Learning: newTestLearning(t)})

	assert.ErrorIs(t, quiz.Session(context.Background()), errEnd)
	assert.Contains(t, output.String(), "Nothing to repeat or learn.")
}

func TestLearnQuizCLI_Session_NewWordFromFrequencyList(t *testing.T) {
	courseLearning := newTestLearning(t)
	list := frequency.NewList([]frequency.Entry{{Word: "haus", Occurrences: 100}})

	cli, _ := newTestCLI("n\n")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{
		Learning:      courseLearning,
		FrequencyList: list,
		Rand:          rand.New(rand.NewSource(1)),
		MaxNewPerDay:  5,
	})

	require.NoError(t, quiz.Session(context.Background()))

	records := courseLearning.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "haus", records[0].QuestionID)
	assert.Equal(t, learning.ResponseWrong, records[0].Response)
	assert.Equal(t, learning.SmallestInterval, records[0].Interval.Duration)
}

func TestLearnQuizCLI_Session_CheckLexiconResolvesKnownWords(t *testing.T) {
	courseLearning := newTestLearning(t)
	checkLexicon := lexicon.New(filepath.Join(t.TempDir(), "de.json"), language.FromCode("de"))
	checkLexicon.Register("der", lexicon.ResponseKnow, nil, time.Time{}, lexicon.AnswerUser)
	list := frequency.NewList([]frequency.Entry{{Word: "der", Occurrences: 9000}})

	cli, _ := newTestCLI("")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{
		Learning:      courseLearning,
		CheckLexicon:  checkLexicon,
		FrequencyList: list,
		Rand:          rand.New(rand.NewSource(1)),
		MaxNewPerDay:  5,
	})

	// The only candidate is already known per the lexicon, so it gets
	// registered as initially known and the session runs out of words.
	assert.ErrorIs(t, quiz.Session(context.Background()), errEnd)
	assert.True(t, courseLearning.IsInitiallyKnown("der"))
}

func TestLearnQuizCLI_Session_NewWordBudgetReached(t *testing.T) {
	courseLearning := newTestLearning(t)
	courseLearning.Register(learning.ResponseWrong, 0, "haus", 5*time.Minute, time.Time{})
	list := frequency.NewList([]frequency.Entry{{Word: "der", Occurrences: 9000}})

	cli, output := newTestCLI("")
	quiz := NewLearnQuizCLI(cli, LearnQuizConfig{
		Learning:      courseLearning,
		FrequencyList: list,
		Rand:          rand.New(rand.NewSource(1)),
		MaxNewPerDay:  1,
	})

	assert.ErrorIs(t, quiz.Session(context.Background()), errEnd)
	assert.Contains(t, output.String(), "Nothing to repeat now.")
}
