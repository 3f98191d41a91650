// Package language provides a small registry of languages with their
// alphabet symbol sets.
package language

import "strings"

// Language describes a natural language. Symbols is the set of characters
// words of the language may consist of; an empty set means the alphabet is
// unknown and every word is accepted.
type Language struct {
	Code    string
	Name    string
	symbols map[rune]struct{}
}

const (
	latin         = "abcdefghijklmnopqrstuvwxyz"
	cyrillic      = "абвгдежзийклмнопрстуфхцчшщъыьэюяё"
	germanExtra   = "äöüß"
	frenchExtra   = "àâæçéèêëîïôœùûüÿ"
	spanishExtra  = "áéíñóúü"
	estonianExtra = "äõöüšž"
)

// New creates a language with an explicit alphabet. Case is ignored.
func New(code, name, symbols string) Language {
	l := Language{Code: code, Name: name}
	if symbols == "" {
		return l
	}
	l.symbols = make(map[rune]struct{})
	for _, r := range strings.ToLower(symbols) + strings.ToUpper(symbols) {
		l.symbols[r] = struct{}{}
	}
	return l
}

var registry = map[string]Language{
	"en": New("en", "English", latin),
	"de": New("de", "German", latin+germanExtra),
	"fr": New("fr", "French", latin+frenchExtra),
	"es": New("es", "Spanish", latin+spanishExtra),
	"et": New("et", "Estonian", latin+estonianExtra),
	"ru": New("ru", "Russian", cyrillic),
}

// FromCode returns the language for an ISO 639-1 code. Unknown codes yield a
// language without an alphabet, which accepts any word.
func FromCode(code string) Language {
	if l, ok := registry[code]; ok {
		return l
	}
	return Language{Code: code, Name: code}
}

// HasSymbols reports whether the alphabet of the language is known.
func (l Language) HasSymbols() bool {
	return len(l.symbols) > 0
}

// ContainsForeignSymbols reports whether the word uses characters outside
// the language's alphabet. It is always false when the alphabet is unknown.
func (l Language) ContainsForeignSymbols(word string) bool {
	if !l.HasSymbols() {
		return false
	}
	for _, r := range word {
		if _, ok := l.symbols[r]; !ok {
			return true
		}
	}
	return false
}
