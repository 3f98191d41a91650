package lexicon

import (
	"sort"
	"time"

	"github.com/skawahara/kioku/internal/language"
)

// propagationWindow is how long a fresh user answer suppresses re-asking the
// same word.
const propagationWindow = 30 * 24 * time.Hour

// Lexicon tracks the vocabulary knowledge of one language over time. The
// record log is the single source of truth; the word map and the binary
// outcome series are derived from it and kept in step on Register.
type Lexicon struct {
	path     string
	language language.Language

	records  []LogRecord
	sessions []Session

	words    map[string]WordKnowledge
	outcomes []Outcome
	start    time.Time
	finish   time.Time

	now func() time.Time
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Lexicon) {
		l.now = now
	}
}

// New creates an empty lexicon for a language, backed by the given log file
// path.
func New(path string, lang language.Language, opts ...Option) *Lexicon {
	l := &Lexicon{
		path:     path,
		language: lang,
		words:    map[string]WordKnowledge{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFromLog folds an ordered record log and its sessions into a Lexicon.
func NewFromLog(path string, lang language.Language, records []LogRecord, sessions []Session, opts ...Option) *Lexicon {
	l := New(path, lang, opts...)
	l.sessions = sessions
	for _, record := range records {
		l.apply(record)
	}
	return l
}

// apply appends one record and updates all derived state.
func (l *Lexicon) apply(record LogRecord) {
	l.records = append(l.records, record)
	l.words[record.Word] = WordKnowledge{Knowing: record.Response, ToSkip: record.ToSkip}

	if record.Response != ResponseKnow && record.Response != ResponseDont {
		return
	}
	l.outcomes = append(l.outcomes, Outcome{
		Time:  record.Date.Time,
		Known: record.Response == ResponseKnow,
	})
	if l.start.IsZero() || record.Date.Before(l.start) {
		l.start = record.Date.Time
	}
	if l.finish.IsZero() || record.Date.After(l.finish) {
		l.finish = record.Date.Time
	}
}

// Register appends an answer to the log. A zero at time means the current
// clock time. Know/dont answers extend the binary outcome series, which
// stays sorted because interactive answers always arrive at the clock time;
// historical imports must be folded through NewFromLog in time order.
func (l *Lexicon) Register(word string, response Response, toSkip *bool, at time.Time, answerType AnswerType) {
	if at.IsZero() {
		at = l.now()
	}
	l.apply(LogRecord{
		Date:       DateTime{Time: at},
		Word:       word,
		Response:   response,
		AnswerType: answerType,
		ToSkip:     toSkip,
	})
}

// Has reports whether the word has ever been answered.
func (l *Lexicon) Has(word string) bool {
	_, ok := l.words[word]
	return ok
}

// Get returns the most recent response for the word.
func (l *Lexicon) Get(word string) (WordKnowledge, bool) {
	knowledge, ok := l.words[word]
	return knowledge, ok
}

// Know reports whether the user knows the word.
func (l *Lexicon) Know(word string) bool {
	knowledge, ok := l.words[word]
	if !ok {
		return false
	}
	return knowledge.Knowing == ResponseKnow || knowledge.Knowing == ResponseDontButProperNounToo
}

// DoNotKnow reports whether the user doesn't know the word.
func (l *Lexicon) DoNotKnow(word string) bool {
	knowledge, ok := l.words[word]
	return ok && knowledge.Knowing == ResponseDont
}

// WordCount returns the number of distinct words answered.
func (l *Lexicon) WordCount() int {
	return len(l.words)
}

// UnknownWords returns the words currently marked as unknown, sorted.
func (l *Lexicon) UnknownWords() []string {
	var words []string
	for word, knowledge := range l.words {
		if knowledge.Knowing == ResponseDont {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return words
}

// Records returns all log records, in order.
func (l *Lexicon) Records() []LogRecord {
	return l.records
}

// WordRecords returns all records for a word, in log order.
func (l *Lexicon) WordRecords(word string) []LogRecord {
	var records []LogRecord
	for _, record := range l.records {
		if record.Word == word {
			records = append(records, record)
		}
	}
	return records
}

// UserRecords returns records for a word answered by the user directly,
// excluding propagations.
func (l *Lexicon) UserRecords(word string) []LogRecord {
	var records []LogRecord
	for _, record := range l.records {
		if record.Word == word && record.AnswerType == AnswerUser {
			records = append(records, record)
		}
	}
	return records
}

// LastAnswer returns the most recent record for the word.
func (l *Lexicon) LastAnswer(word string) (LogRecord, bool) {
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].Word == word {
			return l.records[i], true
		}
	}
	return LogRecord{}, false
}

// Outcomes returns the binary outcome series.
func (l *Lexicon) Outcomes() []Outcome {
	return l.outcomes
}

// CountUnknowns returns the number of dont answers, optionally bounded by a
// time range. Zero bounds are open.
func (l *Lexicon) CountUnknowns(after, before time.Time) int {
	count := 0
	for _, record := range l.records {
		if record.Response != ResponseDont {
			continue
		}
		if !after.IsZero() && record.Date.Before(after) {
			continue
		}
		if !before.IsZero() && record.Date.After(before) {
			continue
		}
		count++
	}
	return count
}

// Average returns the overall ratio of unknown outcomes, or false for an
// empty series.
func (l *Lexicon) Average() (float64, bool) {
	if len(l.outcomes) == 0 {
		return 0, false
	}
	known := 0
	for _, outcome := range l.outcomes {
		if outcome.Known {
			known++
		}
	}
	return 1 - float64(known)/float64(len(l.outcomes)), true
}

// ComputeRate estimates knowledge rate points over the outcome series.
func (l *Lexicon) ComputeRate(precision int, before time.Time) []RatePoint {
	return ComputeRate(l.outcomes, precision, before)
}

// LastRate returns the most recent knowledge rate, or false when the series
// holds fewer than precision unknown answers.
func (l *Lexicon) LastRate(precision int, before time.Time) (float64, bool) {
	return LastRate(l.outcomes, precision, before)
}

// StartSession opens a new check session at the current clock time.
func (l *Lexicon) StartSession() {
	l.sessions = append(l.sessions, Session{Start: DateTime{Time: l.now()}})
}

// EndSession closes the most recent open session at the current clock time.
func (l *Lexicon) EndSession() {
	for i := len(l.sessions) - 1; i >= 0; i-- {
		if l.sessions[i].End == nil {
			l.sessions[i].End = &DateTime{Time: l.now()}
			return
		}
	}
}

// Sessions returns all recorded sessions.
func (l *Lexicon) Sessions() []Session {
	return l.sessions
}

// DoSkip decides whether a candidate word should be asked or silently
// resolved from history. When it returns true, the word was re-registered
// with the answer type naming the reason, and the caller must not ask the
// user. The decision table, in order:
//
//  1. a prior answer exists and the word is flagged to skip, or skipKnown
//     and the prior answer is know, or skipUnknown and the prior answer is
//     dont: the prior answer is propagated;
//  2. the prior answer is not-a-word: propagated as not-a-word;
//  3. the user answered the word directly within the last 30 days: the prior
//     answer is propagated;
//  4. the word contains symbols outside the language's alphabet: registered
//     as assumed not-a-word;
//  5. otherwise the user must be asked.
func (l *Lexicon) DoSkip(word string, skipKnown, skipUnknown bool) bool {
	wordRecords := l.WordRecords(word)

	var skipMarker *bool
	for _, record := range wordRecords {
		if record.ToSkip != nil {
			skipMarker = record.ToSkip
		}
	}

	if len(wordRecords) > 0 {
		last := wordRecords[len(wordRecords)-1]

		if (skipMarker != nil && *skipMarker) ||
			(skipKnown && last.Response == ResponseKnow) ||
			(skipUnknown && last.Response == ResponseDont) {
			l.Register(word, last.Response, skipMarker, time.Time{}, AnswerPropagateSkip)
			return true
		}

		if last.Response == ResponseNotAWord {
			l.Register(word, ResponseNotAWord, nil, time.Time{}, AnswerPropagateNotAWord)
			return true
		}

		if l.answeredRecently(word) {
			l.Register(word, last.Response, nil, time.Time{}, AnswerPropagateTime)
			return true
		}
	}

	if l.language.ContainsForeignSymbols(word) {
		l.Register(word, ResponseNotAWord, nil, time.Time{}, AnswerAssumeNotAWordAlphabet)
		return true
	}

	return false
}

// answeredRecently reports whether the user answered the word directly
// within the propagation window.
func (l *Lexicon) answeredRecently(word string) bool {
	now := l.now()
	for i := len(l.records) - 1; i >= 0; i-- {
		record := l.records[i]
		if now.Sub(record.Date.Time) > propagationWindow {
			return false
		}
		if record.Word == word && record.AnswerType == AnswerUser {
			return true
		}
	}
	return false
}
