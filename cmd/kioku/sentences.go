package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/skawahara/kioku/internal/sentence"
)

func newSentencesCommand() *cobra.Command {
	sentencesCommand := &cobra.Command{
		Use:   "sentences",
		Short: "Manage example sentence corpora",
	}

	sentencesCommand.AddCommand(newSentencesImportCommand())

	return sentencesCommand
}

// newSentencesImportCommand imports a tab separated corpus file into a
// sentence database. Each line holds a numeric id, the sentence and
// optionally translations separated by vertical bars.
func newSentencesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <database> <corpus file>",
		Short: "Import sentences from a tab separated file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repository, err := sentence.Open(filepath.Join(cfg.SentencesDirectory(), args[0]))
			if err != nil {
				return err
			}
			defer func() {
				_ = repository.Close()
			}()
			ctx := cmd.Context()
			if err := repository.Init(ctx); err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", args[1], err)
			}
			defer func() {
				_ = file.Close()
			}()

			imported := 0
			scanner := bufio.NewScanner(file)
			line := 0
			for scanner.Scan() {
				line++
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				fields := strings.Split(text, "\t")
				if len(fields) < 2 {
					return fmt.Errorf("malformed corpus line %s:%d: expected id<TAB>sentence", args[1], line)
				}
				id, err := strconv.ParseInt(fields[0], 10, 64)
				if err != nil {
					return fmt.Errorf("malformed corpus line %s:%d > %w", args[1], line, err)
				}
				record := sentence.Sentence{ID: id, Text: fields[1]}
				if len(fields) > 2 && fields[2] != "" {
					record.Translations = strings.Split(fields[2], "|")
				}
				if err := repository.Add(ctx, record, tokenize(fields[1])); err != nil {
					return fmt.Errorf("repository.Add > %w", err)
				}
				imported++
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("scanner.Err(%s) > %w", args[1], err)
			}

			fmt.Printf("Imported %d sentences into %s.\n", imported, args[0])
			return nil
		},
	}
}

// tokenize splits a sentence into lowercased word forms.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
