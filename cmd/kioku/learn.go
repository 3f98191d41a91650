package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/skawahara/kioku/internal/cli"
	"github.com/skawahara/kioku/internal/dictionary"
	"github.com/skawahara/kioku/internal/sentence"
)

func newLearnCommand() *cobra.Command {
	var newPerDay int
	command := &cobra.Command{
		Use:   "learn <course id>",
		Short: "Repeat due questions of a course and learn new words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			courseID := args[0]
			c, err := loadCourse(cfg, courseID)
			if err != nil {
				return err
			}
			if !c.Active() {
				return fmt.Errorf("course %q is switched off", courseID)
			}

			courseLearning, err := openLearning(cfg, c)
			if err != nil {
				return err
			}
			frequencyList, err := loadFrequencyList(cfg, c.FrequencyList)
			if err != nil {
				return err
			}

			quizConfig := cli.LearnQuizConfig{
				Course:        c,
				Learning:      courseLearning,
				FrequencyList: frequencyList,
				Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
				MaxNewPerDay:  newPerDay,
			}

			if c.CheckLexicon != "" {
				definition, err := loadLexiconDefinition(cfg, c.CheckLexicon)
				if err != nil {
					return err
				}
				quizConfig.CheckLexicon, err = openLexicon(cfg, definition)
				if err != nil {
					return err
				}
			}

			if c.SentencesDatabase != "" {
				sentences, err := sentence.OpenIfExists(filepath.Join(cfg.SentencesDirectory(), c.SentencesDatabase))
				if err != nil {
					return err
				}
				if sentences != nil {
					defer func() {
						_ = sentences.Close()
					}()
				}
				quizConfig.Sentences = sentences
			}

			if c.Dictionary != "" {
				client := dictionary.NewClient(
					cfg.Dictionaries.Endpoint,
					cfg.Dictionaries.Key,
					c.LearningLanguage,
					2,
				)
				defer func() {
					_ = client.Close()
				}()
				quizConfig.Dictionary = dictionary.NewCached(
					client,
					filepath.Join(cfg.DictionaryCacheDirectory(), c.LearningLanguage),
				)
			}

			baseCLI := cli.NewInteractiveCLI()
			quiz := cli.NewLearnQuizCLI(baseCLI, quizConfig)
			fmt.Printf("Learning %s. Answer y when you remember the word.\n\n", c.Name)
			return baseCLI.Run(cmd.Context(), quiz)
		},
	}
	command.Flags().IntVar(&newPerDay, "new-per-day", 10, "How many new words to add per day. 0 disables new words")
	return command
}
