// Package dictionary looks up word definitions, caching fetched items on
// disk so a word is requested from the network at most once.
package dictionary

import (
	"context"
)

// Item is one dictionary entry for a word.
type Item struct {
	Word     string    `json:"word"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups the definitions of a word for one part of speech.
type Meaning struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Definitions  []string `json:"definitions"`
}

//go:generate mockgen -source=dictionary.go -destination=../mocks/dictionary/mock_dictionary.go -package=mock_dictionary

// Dictionary returns the entry for a word, or nil when the word is unknown.
type Dictionary interface {
	GetItem(ctx context.Context, word string) (*Item, error)
}
