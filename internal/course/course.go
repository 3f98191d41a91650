// Package course loads the per-course and per-lexicon YAML definitions that
// name log files, languages and the resources a session uses.
package course

import (
	"fmt"
)

// Course describes one learning course: what is learned, where its response
// log lives and which resources sessions draw on.
type Course struct {
	ID string `yaml:"-"`

	Name             string `yaml:"name"`
	FileName         string `yaml:"file_name"`
	LearningLanguage string `yaml:"learning_language"`
	BaseLanguage     string `yaml:"base_language"`

	// Optional resources; empty values degrade to "no data".
	FrequencyList     string `yaml:"frequency_list,omitempty"`
	SentencesDatabase string `yaml:"sentences_database,omitempty"`
	Dictionary        string `yaml:"dictionary,omitempty"`

	// CheckLexicon names a lexicon consulted before scheduling new words:
	// words it marks as known are registered as initially known instead of
	// being asked.
	CheckLexicon string `yaml:"check_lexicon,omitempty"`

	IsActive *bool `yaml:"is_active,omitempty"`
}

// Active reports whether the course takes part in sessions. Courses are
// active unless switched off.
func (c Course) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

// Validate checks the required course fields.
func (c Course) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("course %s: name is required", c.ID)
	}
	if c.FileName == "" {
		return fmt.Errorf("course %s: file_name is required", c.ID)
	}
	if c.LearningLanguage == "" {
		return fmt.Errorf("course %s: learning_language is required", c.ID)
	}
	return nil
}

// Selection is the strategy for picking words during a lexicon check.
type Selection string

const (
	// SelectionFrequency picks random corpus tokens, so frequent words come
	// up proportionally more often. Rate estimates are meaningful only for
	// this strategy.
	SelectionFrequency Selection = "frequency"
	// SelectionRandom picks uniformly over distinct words.
	SelectionRandom Selection = "random"
	// SelectionTop walks the list from the most frequent word down.
	SelectionTop Selection = "top"
)

// LexiconDefinition describes one tracked lexicon.
type LexiconDefinition struct {
	ID string `yaml:"-"`

	Language         string    `yaml:"language"`
	FileName         string    `yaml:"file_name"`
	FrequencyList    string    `yaml:"frequency_list"`
	Selection        Selection `yaml:"selection,omitempty"`
	PrecisionPerWeek int       `yaml:"precision_per_week,omitempty"`
	SkipKnown        bool      `yaml:"skip_known,omitempty"`
	SkipUnknown      bool      `yaml:"skip_unknown,omitempty"`
}

// Validate checks the required lexicon fields.
func (d LexiconDefinition) Validate() error {
	if d.Language == "" {
		return fmt.Errorf("lexicon %s: language is required", d.ID)
	}
	if d.FileName == "" {
		return fmt.Errorf("lexicon %s: file_name is required", d.ID)
	}
	switch d.Selection {
	case "", SelectionFrequency, SelectionRandom, SelectionTop:
	default:
		return fmt.Errorf("lexicon %s: unknown selection %q", d.ID, d.Selection)
	}
	return nil
}

// LoadCourses reads every course definition of a directory, keyed by file
// basename.
func LoadCourses(dir string) (map[string]Course, error) {
	courses, err := loadYamlFilesAsMap[Course](dir)
	if err != nil {
		return nil, fmt.Errorf("loadYamlFilesAsMap(%s) > %w", dir, err)
	}
	for id, c := range courses {
		c.ID = id
		if err := c.Validate(); err != nil {
			return nil, err
		}
		courses[id] = c
	}
	return courses, nil
}

// LoadLexicons reads every lexicon definition of a directory, keyed by file
// basename.
func LoadLexicons(dir string) (map[string]LexiconDefinition, error) {
	lexicons, err := loadYamlFilesAsMap[LexiconDefinition](dir)
	if err != nil {
		return nil, fmt.Errorf("loadYamlFilesAsMap(%s) > %w", dir, err)
	}
	for id, d := range lexicons {
		d.ID = id
		if d.Selection == "" {
			d.Selection = SelectionFrequency
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		lexicons[id] = d
	}
	return lexicons, nil
}
