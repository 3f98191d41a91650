package learning

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skawahara/kioku/internal/storage"
)

type logFile struct {
	Log []LearningRecord `json:"log"`
}

// Load reads a learning log file. A missing file yields an empty course; the
// file is created on the first Write. A malformed file is a fatal condition
// for the course and the error names the path.
func Load(path string, opts ...Option) (*Learning, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path, opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unreadable learning log %s > %w", path, err)
	}

	var contents logFile
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("malformed learning log %s > %w", path, err)
	}
	for _, record := range contents.Log {
		if _, err := ParseResponse(string(record.Response)); err != nil {
			return nil, fmt.Errorf("malformed learning log %s > %w", path, err)
		}
	}
	return NewFromRecords(path, contents.Log, opts...), nil
}

// Write persists the log to its file atomically.
func (l *Learning) Write() error {
	records := l.records
	if records == nil {
		records = []LearningRecord{}
	}
	if err := storage.WriteJSONAtomic(l.path, logFile{Log: records}); err != nil {
		return fmt.Errorf("storage.WriteJSONAtomic(%s) > %w", l.path, err)
	}
	return nil
}
