package lexicon

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skawahara/kioku/internal/language"
	"github.com/skawahara/kioku/internal/storage"
)

type logFile struct {
	Records  []LogRecord `json:"records"`
	Sessions []Session   `json:"sessions"`
}

// Load reads a lexicon log file. A missing file yields an empty lexicon; the
// file is created on the first Write. A malformed file is a fatal condition
// for the lexicon and the error names the path.
func Load(path string, lang language.Language, opts ...Option) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path, lang, opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unreadable lexicon log %s > %w", path, err)
	}

	var contents logFile
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("malformed lexicon log %s > %w", path, err)
	}
	for _, record := range contents.Records {
		if _, err := ParseResponse(string(record.Response)); err != nil {
			return nil, fmt.Errorf("malformed lexicon log %s > %w", path, err)
		}
	}
	return NewFromLog(path, lang, contents.Records, contents.Sessions, opts...), nil
}

// Write persists the log and its sessions to the lexicon file atomically.
func (l *Lexicon) Write() error {
	contents := logFile{Records: l.records, Sessions: l.sessions}
	if contents.Records == nil {
		contents.Records = []LogRecord{}
	}
	if contents.Sessions == nil {
		contents.Sessions = []Session{}
	}
	if err := storage.WriteJSONAtomic(l.path, contents); err != nil {
		return fmt.Errorf("storage.WriteJSONAtomic(%s) > %w", l.path, err)
	}
	return nil
}
