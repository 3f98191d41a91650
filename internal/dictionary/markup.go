package dictionary

import (
	"strings"

	"golang.org/x/net/html"
)

// stripMarkup flattens HTML markup in a definition to its plain text.
// Definitions served by some sources carry inline tags and entities.
func stripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.TrimSpace(text)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var builder strings.Builder
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			builder.Write(tokenizer.Text())
		}
	}
	return strings.TrimSpace(builder.String())
}
