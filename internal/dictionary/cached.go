package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
)

// Cached wraps a Dictionary with a file cache. Both entries and confirmed
// absences are cached, so a word hits the source at most once.
type Cached struct {
	source Dictionary
	files  *FileCache
}

func NewCached(source Dictionary, cacheDirectory string) *Cached {
	return &Cached{
		source: source,
		files:  NewFileCache(cacheDirectory),
	}
}

// GetItem implements the Dictionary interface.
func (c *Cached) GetItem(ctx context.Context, word string) (*Item, error) {
	contents, err := c.files.cache(word, func() ([]byte, error) {
		item, err := c.source.GetItem(ctx, word)
		if err != nil {
			return nil, err
		}
		// A nil item is stored as JSON null, marking the word as absent.
		return json.Marshal(item)
	})
	if err != nil {
		return nil, fmt.Errorf("files.cache(%s) > %w", word, err)
	}

	var item *Item
	if err := json.Unmarshal(contents, &item); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", c.files.filePath(word), err)
	}
	return item, nil
}
