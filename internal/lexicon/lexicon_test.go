package lexicon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/kioku/internal/language"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLexicon_Register(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	l := New("unused.json", language.FromCode("de"), WithClock(fixedClock(now)))

	l.Register("haus", ResponseKnow, nil, now.Add(-2*time.Hour), AnswerUser)
	l.Register("baum", ResponseDont, boolPtr(true), now.Add(-time.Hour), AnswerUser)
	l.Register("zeit", ResponseNotAWord, nil, time.Time{}, AnswerUser)

	// Last write wins.
	l.Register("haus", ResponseDont, nil, now, AnswerUser)

	knowledge, ok := l.Get("haus")
	require.True(t, ok)
	assert.Equal(t, ResponseDont, knowledge.Knowing)
	assert.True(t, l.DoNotKnow("haus"))
	assert.False(t, l.Know("haus"))

	knowledge, ok = l.Get("baum")
	require.True(t, ok)
	require.NotNil(t, knowledge.ToSkip)
	assert.True(t, *knowledge.ToSkip)

	// The not-a-word answer is logged but excluded from the outcome series.
	assert.Len(t, l.Records(), 4)
	require.Len(t, l.Outcomes(), 3)
	assert.Equal(t, []Outcome{
		{Time: now.Add(-2 * time.Hour), Known: true},
		{Time: now.Add(-time.Hour), Known: false},
		{Time: now, Known: false},
	}, l.Outcomes())

	assert.Equal(t, 3, l.WordCount())
	assert.Equal(t, 2, l.CountUnknowns(time.Time{}, time.Time{}))
	assert.Equal(t, 1, l.CountUnknowns(now.Add(-30*time.Minute), time.Time{}))

	average, ok := l.Average()
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, average, 1e-9)
}

func TestLexicon_UnknownWords(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	l := New("unused.json", language.FromCode("de"), WithClock(fixedClock(now)))

	l.Register("zeit", ResponseDont, nil, now.Add(-3*time.Hour), AnswerUser)
	l.Register("haus", ResponseKnow, nil, now.Add(-2*time.Hour), AnswerUser)
	l.Register("baum", ResponseDont, nil, now.Add(-time.Hour), AnswerUser)
	l.Register("zeit", ResponseKnow, nil, now, AnswerUser)

	assert.Equal(t, []string{"baum"}, l.UnknownWords())
}

func TestLexicon_RebuildMatchesIncremental(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	l := New("unused.json", language.FromCode("de"), WithClock(fixedClock(now)))

	l.Register("haus", ResponseKnow, nil, now.Add(-3*time.Hour), AnswerUser)
	l.Register("baum", ResponseDont, boolPtr(false), now.Add(-2*time.Hour), AnswerUser)
	l.Register("zeit", ResponseKnowOrNotAWord, nil, now.Add(-time.Hour), AnswerUser)
	l.Register("baum", ResponseDont, nil, now, AnswerPropagateTime)

	rebuilt := NewFromLog("unused.json", language.FromCode("de"), l.Records(), l.Sessions(), WithClock(fixedClock(now)))
	assert.Equal(t, l.words, rebuilt.words)
	assert.Equal(t, l.outcomes, rebuilt.outcomes)
	assert.Equal(t, l.start, rebuilt.start)
	assert.Equal(t, l.finish, rebuilt.finish)
}

func TestLexicon_WordRecords(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	l := New("unused.json", language.FromCode("de"), WithClock(fixedClock(now)))

	l.Register("haus", ResponseKnow, nil, now.Add(-2*time.Hour), AnswerUser)
	l.Register("baum", ResponseDont, nil, now.Add(-time.Hour), AnswerUser)
	l.Register("haus", ResponseKnow, nil, now, AnswerPropagateTime)

	assert.Len(t, l.WordRecords("haus"), 2)
	assert.Len(t, l.UserRecords("haus"), 1)

	last, ok := l.LastAnswer("haus")
	require.True(t, ok)
	assert.Equal(t, AnswerPropagateTime, last.AnswerType)

	_, ok = l.LastAnswer("zeit")
	assert.False(t, ok)
}

func TestLexicon_DoSkip(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	longAgo := now.Add(-60 * 24 * time.Hour)

	tests := []struct {
		name               string
		setup              func(l *Lexicon)
		word               string
		skipKnown          bool
		skipUnknown        bool
		expectedSkip       bool
		expectedAnswerType AnswerType
		expectedResponse   Response
	}{
		{
			name:         "fresh word is asked",
			setup:        func(l *Lexicon) {},
			word:         "haus",
			expectedSkip: false,
		},
		{
			name: "skip flag propagates the prior answer",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseKnow, boolPtr(true), longAgo, AnswerUser)
			},
			word:               "haus",
			expectedSkip:       true,
			expectedAnswerType: AnswerPropagateSkip,
			expectedResponse:   ResponseKnow,
		},
		{
			name: "skipKnown propagates a known word",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseKnow, nil, longAgo, AnswerUser)
			},
			word:               "haus",
			skipKnown:          true,
			expectedSkip:       true,
			expectedAnswerType: AnswerPropagateSkip,
			expectedResponse:   ResponseKnow,
		},
		{
			name: "skipUnknown propagates an unknown word",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseDont, nil, longAgo, AnswerUser)
			},
			word:               "haus",
			skipUnknown:        true,
			expectedSkip:       true,
			expectedAnswerType: AnswerPropagateSkip,
			expectedResponse:   ResponseDont,
		},
		{
			name: "skipKnown does not cover unknown words",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseDont, nil, longAgo, AnswerUser)
			},
			word:         "haus",
			skipKnown:    true,
			expectedSkip: false,
		},
		{
			name: "not a word propagates",
			setup: func(l *Lexicon) {
				l.Register("xyz", ResponseNotAWord, nil, longAgo, AnswerUser)
			},
			word:               "xyz",
			expectedSkip:       true,
			expectedAnswerType: AnswerPropagateNotAWord,
			expectedResponse:   ResponseNotAWord,
		},
		{
			name: "recent user answer propagates",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseKnow, nil, now.Add(-24*time.Hour), AnswerUser)
			},
			word:               "haus",
			expectedSkip:       true,
			expectedAnswerType: AnswerPropagateTime,
			expectedResponse:   ResponseKnow,
		},
		{
			name: "recent propagation does not count as a user answer",
			setup: func(l *Lexicon) {
				l.Register("haus", ResponseKnow, nil, longAgo, AnswerUser)
				l.Register("haus", ResponseKnow, nil, now.Add(-24*time.Hour), AnswerPropagateTime)
			},
			word:         "haus",
			expectedSkip: false,
		},
		{
			name:               "foreign symbols are assumed not a word",
			setup:              func(l *Lexicon) {},
			word:               "дом",
			expectedSkip:       true,
			expectedAnswerType: AnswerAssumeNotAWordAlphabet,
			expectedResponse:   ResponseNotAWord,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New("unused.json", language.FromCode("de"), WithClock(fixedClock(now)))
			tc.setup(l)
			recordsBefore := len(l.Records())

			skipped := l.DoSkip(tc.word, tc.skipKnown, tc.skipUnknown)
			assert.Equal(t, tc.expectedSkip, skipped)

			if !tc.expectedSkip {
				assert.Len(t, l.Records(), recordsBefore)
				return
			}
			// Every skip decision re-registers the word with its reason.
			require.Len(t, l.Records(), recordsBefore+1)
			last := l.Records()[len(l.Records())-1]
			assert.Equal(t, tc.word, last.Word)
			assert.Equal(t, tc.expectedAnswerType, last.AnswerType)
			assert.Equal(t, tc.expectedResponse, last.Response)
			assert.Equal(t, now, last.Date.Time)
		})
	}
}

func TestLexicon_Sessions(t *testing.T) {
	current := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	l := New("unused.json", language.FromCode("de"), WithClock(func() time.Time { return current }))

	l.StartSession()
	current = current.Add(10 * time.Minute)
	l.EndSession()

	sessions := l.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local), sessions[0].Start.Time)
	require.NotNil(t, sessions[0].End)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 10, 0, 0, time.Local), sessions[0].End.Time)

	// Ending without an open session is a no-op.
	l.EndSession()
	require.Len(t, l.Sessions(), 1)
}
