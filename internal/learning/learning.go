package learning

import (
	"time"
)

// Learning tracks one learning course: the ordered response log and the
// knowledge cache derived from it. The log is the single source of truth;
// the cache is updated incrementally on Register and rebuilding it from the
// log always yields the same map.
type Learning struct {
	path      string
	records   []LearningRecord
	knowledge map[string]Knowledge
	now       func() time.Time
}

// Option configures a Learning.
type Option func(*Learning)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Learning) {
		l.now = now
	}
}

// New creates an empty learning course backed by the given log file path.
func New(path string, opts ...Option) *Learning {
	l := &Learning{
		path:      path,
		knowledge: map[string]Knowledge{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFromRecords folds an ordered record sequence into a Learning.
func NewFromRecords(path string, records []LearningRecord, opts ...Option) *Learning {
	l := New(path, opts...)
	for _, record := range records {
		l.records = append(l.records, record)
		l.updateKnowledge(record)
	}
	return l
}

func (l *Learning) updateKnowledge(record LearningRecord) {
	var responses []Response
	if previous, ok := l.knowledge[record.QuestionID]; ok {
		responses = previous.Responses
	}
	l.knowledge[record.QuestionID] = Knowledge{
		QuestionID:     record.QuestionID,
		Responses:      append(responses, record.Response),
		LastRecordTime: record.Time.Time,
		Interval:       record.Interval.Duration,
	}
}

// Register appends a response to the log and updates the knowledge cache.
// A zero at time means the current clock time. The caller supplies the next
// interval; Register stores it as is.
func (l *Learning) Register(response Response, sentenceID int, questionID string, interval time.Duration, at time.Time) {
	if at.IsZero() {
		at = l.now()
	}
	record := LearningRecord{
		QuestionID: questionID,
		Response:   response,
		SentenceID: sentenceID,
		Time:       LogTime{Time: at},
		Interval:   Seconds{Duration: interval},
	}
	l.records = append(l.records, record)
	l.updateKnowledge(record)
}

// Records returns the log in order.
func (l *Learning) Records() []LearningRecord {
	return l.records
}

// Has reports whether the question has ever been answered.
func (l *Learning) Has(questionID string) bool {
	_, ok := l.knowledge[questionID]
	return ok
}

// Knowledge returns the derived state for a question.
func (l *Learning) Knowledge(questionID string) (Knowledge, bool) {
	knowledge, ok := l.knowledge[questionID]
	return knowledge, ok
}

// GetNext returns the due question to repeat, excluding ids in skip.
// Among due questions the one with the earliest due time wins; ties break on
// the smaller question id, so the result is deterministic for a fixed log
// and clock.
func (l *Learning) GetNext(skip map[string]struct{}) (string, bool) {
	now := l.now()
	var (
		bestID   string
		bestTime time.Time
		found    bool
	)
	for questionID, knowledge := range l.knowledge {
		if _, ok := skip[questionID]; ok {
			continue
		}
		if !knowledge.IsLearning() {
			continue
		}
		nextTime := knowledge.NextTime()
		if !now.After(nextTime) {
			continue
		}
		if !found || nextTime.Before(bestTime) || (nextTime.Equal(bestTime) && questionID < bestID) {
			bestID, bestTime, found = questionID, nextTime, true
		}
	}
	return bestID, found
}

// IsReady reports whether any question is due.
func (l *Learning) IsReady(skip map[string]struct{}) bool {
	_, ok := l.GetNext(skip)
	return ok
}

// IsInitiallyKnown reports whether the question was marked as already known:
// a single right answer registered with a zero interval.
func (l *Learning) IsInitiallyKnown(questionID string) bool {
	knowledge, ok := l.knowledge[questionID]
	if !ok {
		return false
	}
	return !knowledge.IsLearning() &&
		len(knowledge.Responses) == 1 &&
		knowledge.Responses[0] == ResponseRight
}

// GetNearest returns the earliest due time over all scheduled questions,
// excluding ids in skip.
func (l *Learning) GetNearest(skip map[string]struct{}) (time.Time, bool) {
	var (
		nearest time.Time
		found   bool
	)
	for questionID, knowledge := range l.knowledge {
		if _, ok := skip[questionID]; ok {
			continue
		}
		if !knowledge.IsLearning() {
			continue
		}
		if nextTime := knowledge.NextTime(); !found || nextTime.Before(nearest) {
			nearest, found = nextTime, true
		}
	}
	return nearest, found
}

// CountToRepeat returns the number of questions past their due time,
// excluding ids in skip.
func (l *Learning) CountToRepeat(skip map[string]struct{}) int {
	now := l.now()
	count := 0
	for questionID, knowledge := range l.knowledge {
		if _, ok := skip[questionID]; ok {
			continue
		}
		if knowledge.IsLearning() && knowledge.NextTime().Before(now) {
			count++
		}
	}
	return count
}

// CountLearning returns the number of questions currently scheduled.
func (l *Learning) CountLearning() int {
	count := 0
	for _, knowledge := range l.knowledge {
		if knowledge.IsLearning() {
			count++
		}
	}
	return count
}

// CountAddedToday returns the number of questions whose first ever record
// falls after local midnight.
func (l *Learning) CountAddedToday() int {
	now := l.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	seen := map[string]struct{}{}
	count := 0
	for _, record := range l.records {
		if _, ok := seen[record.QuestionID]; !ok && record.Time.After(midnight) {
			count++
		}
		seen[record.QuestionID] = struct{}{}
	}
	return count
}
