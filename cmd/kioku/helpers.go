package main

import (
	"fmt"
	"path/filepath"

	"github.com/skawahara/kioku/internal/config"
	"github.com/skawahara/kioku/internal/course"
	"github.com/skawahara/kioku/internal/frequency"
	"github.com/skawahara/kioku/internal/language"
	"github.com/skawahara/kioku/internal/learning"
	"github.com/skawahara/kioku/internal/lexicon"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.EnsureLayout(); err != nil {
		return nil, fmt.Errorf("failed to prepare the data directory: %w", err)
	}
	return cfg, nil
}

func loadCourse(cfg *config.Config, id string) (course.Course, error) {
	courses, err := course.LoadCourses(cfg.CoursesDirectory())
	if err != nil {
		return course.Course{}, fmt.Errorf("course.LoadCourses > %w", err)
	}
	c, ok := courses[id]
	if !ok {
		return course.Course{}, fmt.Errorf("unknown course %q, define it in %s", id, cfg.CoursesDirectory())
	}
	return c, nil
}

func loadLexiconDefinition(cfg *config.Config, id string) (course.LexiconDefinition, error) {
	lexicons, err := course.LoadLexicons(cfg.LexiconsDirectory())
	if err != nil {
		return course.LexiconDefinition{}, fmt.Errorf("course.LoadLexicons > %w", err)
	}
	definition, ok := lexicons[id]
	if !ok {
		return course.LexiconDefinition{}, fmt.Errorf("unknown lexicon %q, define it in %s", id, cfg.LexiconsDirectory())
	}
	return definition, nil
}

func openLearning(cfg *config.Config, c course.Course) (*learning.Learning, error) {
	path := filepath.Join(cfg.LearnLogDirectory(), c.FileName)
	courseLearning, err := learning.Load(path)
	if err != nil {
		return nil, fmt.Errorf("learning.Load > %w", err)
	}
	return courseLearning, nil
}

func openLexicon(cfg *config.Config, definition course.LexiconDefinition) (*lexicon.Lexicon, error) {
	path := filepath.Join(cfg.LexiconLogDirectory(), definition.FileName)
	lex, err := lexicon.Load(path, language.FromCode(definition.Language))
	if err != nil {
		return nil, fmt.Errorf("lexicon.Load > %w", err)
	}
	return lex, nil
}

// loadFrequencyList loads the named frequency list, or nil when no list is
// configured.
func loadFrequencyList(cfg *config.Config, fileName string) (*frequency.List, error) {
	if fileName == "" {
		return nil, nil
	}
	list, err := frequency.LoadList(filepath.Join(cfg.FrequencyDirectory(), fileName))
	if err != nil {
		return nil, fmt.Errorf("frequency.LoadList > %w", err)
	}
	return list, nil
}
