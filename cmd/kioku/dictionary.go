package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skawahara/kioku/internal/dictionary"
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "dictionary",
		Short: "Look up word definitions",
	}
	flags := rootCommand.PersistentFlags()

	languageCode := "en"
	flags.StringVar(&languageCode, "language", languageCode, "Language of the word")

	rootCommand.AddCommand(&cobra.Command{
		Use:  "lookup <word>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := dictionary.NewClient(cfg.Dictionaries.Endpoint, cfg.Dictionaries.Key, languageCode, 2)
			defer func() {
				_ = client.Close()
			}()
			cached := dictionary.NewCached(client, filepath.Join(cfg.DictionaryCacheDirectory(), languageCode))

			item, err := cached.GetItem(cmd.Context(), word)
			if err != nil {
				return fmt.Errorf("dictionary.GetItem > %w", err)
			}
			if item == nil {
				fmt.Printf("No entry for %q.\n", word)
				return nil
			}
			for _, meaning := range item.Meanings {
				fmt.Println(meaning.PartOfSpeech)
				for _, definition := range meaning.Definitions {
					fmt.Printf("  %s\n", definition)
				}
			}
			return nil
		},
	})
	return &rootCommand
}
