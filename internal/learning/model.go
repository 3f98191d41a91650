// Package learning provides the append-only response log, the derived
// per-question knowledge state and the scheduling queries built on top of it.
package learning

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Response is a user answer to a learning question.
type Response string

const (
	ResponseRight Response = "y"
	ResponseWrong Response = "n"
	ResponseSkip  Response = "s"
)

// ParseResponse converts a log symbol into a Response.
func ParseResponse(s string) (Response, error) {
	switch Response(s) {
	case ResponseRight, ResponseWrong, ResponseSkip:
		return Response(s), nil
	}
	return "", fmt.Errorf("unknown response %q", s)
}

// timeFormat is the on-disk timestamp format of learning logs.
const timeFormat = "2006.01.02 15:04:05.000000"

// LogTime serializes a timestamp in the learning log format.
type LogTime struct {
	time.Time
}

func (t LogTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(timeFormat))
}

func (t *LogTime) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(time) > %w", err)
	}
	parsed, err := time.ParseInLocation(timeFormat, value, time.Local)
	if err != nil {
		return fmt.Errorf("unable to parse time %q: expected %s format", value, timeFormat)
	}
	t.Time = parsed
	return nil
}

// Seconds serializes a duration as a float number of seconds.
type Seconds struct {
	time.Duration
}

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Duration.Seconds())
}

func (s *Seconds) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(interval) > %w", err)
	}
	s.Duration = time.Duration(math.Round(value * float64(time.Second)))
	return nil
}

// LearningRecord is one immutable entry of the response log.
type LearningRecord struct {
	QuestionID string   `json:"word"`
	Response   Response `json:"answer"`
	SentenceID int      `json:"sentence_id"`
	Time       LogTime  `json:"time"`
	Interval   Seconds  `json:"interval"`
}

// IsLearning reports whether the record keeps the question scheduled.
func (r LearningRecord) IsLearning() bool {
	return r.Interval.Duration > 0
}

// State is the scheduling state of a question.
type State string

const (
	StateNew      State = "new"
	StateLearning State = "learning"
	StateDone     State = "done"
)

// Knowledge is the derived state of one question, folded from its records in
// log order. It is never persisted separately.
type Knowledge struct {
	QuestionID     string
	Responses      []Response
	LastRecordTime time.Time
	Interval       time.Duration
}

// IsLearning reports whether the question should be repeated in the future.
func (k Knowledge) IsLearning() bool {
	return k.Interval > 0
}

// State returns the scheduling state of the question.
func (k Knowledge) State() State {
	if len(k.Responses) == 0 {
		return StateNew
	}
	if k.IsLearning() {
		return StateLearning
	}
	return StateDone
}

// NextTime returns the point in time the question becomes due.
func (k Knowledge) NextTime() time.Time {
	return k.LastRecordTime.Add(k.Interval)
}

// Depth returns the length of the trailing run of right answers, counted
// backward until the most recent wrong answer.
func (k Knowledge) Depth() int {
	depth := 0
	for i := len(k.Responses) - 1; i >= 0; i-- {
		if k.Responses[i] == ResponseWrong {
			break
		}
		depth++
	}
	return depth
}

// Returns returns the number of wrong answers, i.e. how many times the
// question fell back to the minimal interval.
func (k Knowledge) Returns() int {
	count := 0
	for _, response := range k.Responses {
		if response == ResponseWrong {
			count++
		}
	}
	return count
}

// LastResponse returns the most recent answer for the question.
func (k Knowledge) LastResponse() Response {
	return k.Responses[len(k.Responses)-1]
}

// AnswerCount returns the number of recorded answers.
func (k Knowledge) AnswerCount() int {
	return len(k.Responses)
}
