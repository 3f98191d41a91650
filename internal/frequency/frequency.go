// Package frequency loads word frequency lists and picks words from them.
package frequency

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one word of a frequency list with its number of occurrences in
// the underlying corpus.
type Entry struct {
	Word        string
	Occurrences int64
}

// List is a word frequency list ordered from most to least frequent.
type List struct {
	entries     []Entry
	indexByWord map[string]int
	total       int64
}

// LoadList reads a frequency list from a two-column text file: a word and
// its occurrence count separated by a tab, one pair per line. Lines are
// expected most frequent first.
func LoadList(path string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	list := &List{indexByWord: map[string]int{}}
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		word, count, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed frequency list %s:%d: expected word<TAB>count", path, line)
		}
		occurrences, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed frequency list %s:%d > %w", path, line, err)
		}
		list.add(word, occurrences)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err(%s) > %w", path, err)
	}
	return list, nil
}

// NewList builds a frequency list from entries, most frequent first.
func NewList(entries []Entry) *List {
	list := &List{indexByWord: map[string]int{}}
	for _, entry := range entries {
		list.add(entry.Word, entry.Occurrences)
	}
	return list
}

func (l *List) add(word string, occurrences int64) {
	// Merge duplicated forms; lists concatenated from several corpora may
	// repeat a word.
	if index, ok := l.indexByWord[word]; ok {
		l.entries[index].Occurrences += occurrences
	} else {
		l.indexByWord[word] = len(l.entries)
		l.entries = append(l.entries, Entry{Word: word, Occurrences: occurrences})
	}
	l.total += occurrences
}

// Len returns the number of distinct words.
func (l *List) Len() int {
	return len(l.entries)
}

// TotalOccurrences returns the summed occurrences over the whole list.
func (l *List) TotalOccurrences() int64 {
	return l.total
}

// Occurrences returns the occurrence count for a word, zero when absent.
func (l *List) Occurrences(word string) int64 {
	index, ok := l.indexByWord[word]
	if !ok {
		return 0
	}
	return l.entries[index].Occurrences
}

// WordByIndex returns the word at a rank position.
func (l *List) WordByIndex(index int) (Entry, bool) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[index], true
}

// RandomWord picks a word uniformly over distinct words.
func (l *List) RandomWord(rng *rand.Rand) (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[rng.Intn(len(l.entries))], true
}

// RandomWordByFrequency picks a word weighted by its occurrences, which is
// equivalent to picking a random token from the corpus.
func (l *List) RandomWordByFrequency(rng *rand.Rand) (Entry, bool) {
	if l.total <= 0 {
		return l.RandomWord(rng)
	}
	target := rng.Int63n(l.total)
	for _, entry := range l.entries {
		target -= entry.Occurrences
		if target < 0 {
			return entry, true
		}
	}
	return l.entries[len(l.entries)-1], true
}

// SortByFrequency returns the given words ordered from most to least
// frequent, for reporting the most valuable unknown words first.
func (l *List) SortByFrequency(words []string) []string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return l.Occurrences(sorted[i]) > l.Occurrences(sorted[j])
	})
	return sorted
}
