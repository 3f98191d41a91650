// Package lexicon estimates what fraction of a language's vocabulary the
// user knows, based on an append-only log of known/unknown answers.
package lexicon

import (
	"encoding/json"
	"fmt"
	"time"
)

// Response is a user answer about a word, or a propagation of one.
type Response string

const (
	// ResponseKnow means the user knows at least one meaning of the word.
	ResponseKnow Response = "know"
	// ResponseDont means the user doesn't know any meaning of the word.
	ResponseDont Response = "dont"
	// ResponseKnowOrNotAWord means the user knows the word or the string is
	// not a word at all.
	ResponseKnowOrNotAWord Response = "know_or_not_a_word"
	// ResponseDontButProperNounToo means the user doesn't know the word, but
	// it is often used as a proper noun.
	ResponseDontButProperNounToo Response = "dont_but_proper_noun_too"
	// ResponseNotAWord means the string is not a dictionary word: a
	// misspelling, an onomatopoeic word, a foreign word. Frequency lists
	// contain such strings when they were not filtered with a dictionary.
	ResponseNotAWord Response = "not_a_word"
)

// ParseResponse converts a log string into a Response.
func ParseResponse(s string) (Response, error) {
	switch Response(s) {
	case ResponseKnow, ResponseDont, ResponseKnowOrNotAWord,
		ResponseDontButProperNounToo, ResponseNotAWord:
		return Response(s), nil
	}
	return "", fmt.Errorf("unknown lexicon response %q", s)
}

// Symbol returns the one-character marker used when rendering logs.
func (r Response) Symbol() string {
	switch r {
	case ResponseKnow:
		return "K"
	case ResponseDont:
		return "D"
	case ResponseKnowOrNotAWord:
		return "?"
	case ResponseDontButProperNounToo:
		return "B"
	case ResponseNotAWord:
		return "N"
	}
	return " "
}

// AnswerType records how an answer was obtained: directly from the user or
// through one of the propagation rules.
type AnswerType string

const (
	// AnswerUser is a fresh user answer.
	AnswerUser AnswerType = "user_answer"
	// AnswerAssumeNotAWordAlphabet marks a word that was assumed not to be a
	// word because it contains symbols outside the language's alphabet.
	AnswerAssumeNotAWordAlphabet AnswerType = "assume_not_a_word"
	// AnswerPropagateSkip propagates a prior answer because the user flagged
	// the word to be skipped.
	AnswerPropagateSkip AnswerType = "propagate_skip"
	// AnswerPropagateNotAWord propagates a prior not-a-word answer.
	AnswerPropagateNotAWord AnswerType = "propagate_not_a_word"
	// AnswerPropagateTime propagates a prior answer because not enough time
	// passed since the user gave it.
	AnswerPropagateTime AnswerType = "propagate_time"
)

// dateFormat is the on-disk timestamp format of lexicon logs.
const dateFormat = "2006.01.02 15:04:05"

// DateTime serializes a timestamp in the lexicon log format.
type DateTime struct {
	time.Time
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(dateFormat))
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(date) > %w", err)
	}
	parsed, err := time.ParseInLocation(dateFormat, value, time.Local)
	if err != nil {
		return fmt.Errorf("unable to parse date %q: expected %s format", value, dateFormat)
	}
	t.Time = parsed
	return nil
}

// LogRecord is one immutable entry of the lexicon log.
type LogRecord struct {
	Date       DateTime   `json:"date"`
	Word       string     `json:"word"`
	Response   Response   `json:"response"`
	AnswerType AnswerType `json:"answer_type,omitempty"`
	ToSkip     *bool      `json:"to_skip,omitempty"`
}

// WordKnowledge is the last-write-wins state of one word.
type WordKnowledge struct {
	Knowing Response
	ToSkip  *bool
}

// Session bounds a contiguous run of log activity. It is informational only
// and does not affect rate estimation.
type Session struct {
	Start DateTime  `json:"start"`
	End   *DateTime `json:"end,omitempty"`
}

// Outcome is one element of the binary outcome series: a know/dont answer
// projected to 1/0 at a point in time.
type Outcome struct {
	Time  time.Time
	Known bool
}
