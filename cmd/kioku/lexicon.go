package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/skawahara/kioku/internal/cli"
	"github.com/skawahara/kioku/internal/course"
)

// SelectionFlag overrides the word selection strategy of a lexicon check.
type SelectionFlag course.Selection

// Set implements pflag.Value.
func (s *SelectionFlag) Set(v string) error {
	switch course.Selection(v) {
	case course.SelectionFrequency, course.SelectionRandom, course.SelectionTop:
		*s = SelectionFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q",
			v, course.SelectionFrequency, course.SelectionRandom, course.SelectionTop)
	}
	return nil
}

// String implements pflag.Value.
func (s *SelectionFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SelectionFlag) Type() string {
	return "SelectionFlag"
}

var (
	_ pflag.Value = (*SelectionFlag)(nil)
)

func newLexiconCommand() *cobra.Command {
	lexiconCommand := &cobra.Command{
		Use:   "lexicon",
		Short: "Check and report how much of a language's vocabulary you know",
	}

	lexiconCommand.AddCommand(newLexiconCheckCommand())
	lexiconCommand.AddCommand(newLexiconRateCommand())

	return lexiconCommand
}

func newLexiconCheckCommand() *cobra.Command {
	var selection SelectionFlag
	command := &cobra.Command{
		Use:   "check <lexicon id>",
		Short: "Answer whether you know randomly selected words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			definition, err := loadLexiconDefinition(cfg, args[0])
			if err != nil {
				return err
			}
			if selection != "" {
				definition.Selection = course.Selection(selection)
			}
			lex, err := openLexicon(cfg, definition)
			if err != nil {
				return err
			}
			frequencyList, err := loadFrequencyList(cfg, definition.FrequencyList)
			if err != nil {
				return err
			}

			baseCLI := cli.NewInteractiveCLI()
			quiz := cli.NewLexiconQuizCLI(baseCLI, cli.LexiconQuizConfig{
				Definition:    definition,
				Lexicon:       lex,
				FrequencyList: frequencyList,
				Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
			})
			fmt.Println("Answer honestly: this estimates your vocabulary, it does not teach.")
			fmt.Println()
			return quiz.Check(cmd.Context())
		},
	}
	command.Flags().Var(&selection, "selection", "Word selection strategy. Options: frequency, random, top")
	return command
}

func newLexiconRateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <lexicon id>",
		Short: "Print the knowledge rate history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			definition, err := loadLexiconDefinition(cfg, args[0])
			if err != nil {
				return err
			}
			lex, err := openLexicon(cfg, definition)
			if err != nil {
				return err
			}
			frequencyList, err := loadFrequencyList(cfg, definition.FrequencyList)
			if err != nil {
				return err
			}

			baseCLI := cli.NewInteractiveCLI()
			baseCLI.RenderLexiconStats(definition.ID, lex)
			baseCLI.RenderTopUnknown(lex, frequencyList, 10)
			return nil
		},
	}
}
