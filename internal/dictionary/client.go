package dictionary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// Client fetches dictionary entries from a REST endpoint that serves
// per-language word lookups as JSON.
type Client struct {
	httpClient       *resty.Client
	language         string
	maxRetryAttempts uint
}

func NewClient(endpoint, key, language string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(endpoint)
	client.SetHeader("Accept", "application/json")
	if key != "" {
		client.SetHeader("Authorization", "Bearer "+key)
	}

	return &Client{
		httpClient:       client,
		language:         language,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type apiEntry struct {
	Word     string       `json:"word"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// GetItem implements the Dictionary interface. An unknown word returns nil
// without an error.
func (client *Client) GetItem(ctx context.Context, word string) (*Item, error) {
	var result *Item
	if err := retry.Do(
		func() error {
			item, err := client.getItem(ctx, word)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = item
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) getItem(ctx context.Context, word string) (*Item, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&[]apiEntry{}).
		Get(fmt.Sprintf("/%s/%s", client.language, url.PathEscape(word)))
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	entries := response.Result().(*[]apiEntry)
	if entries == nil || len(*entries) == 0 {
		return nil, nil
	}

	item := &Item{Word: word}
	for _, entry := range *entries {
		for _, meaning := range entry.Meanings {
			converted := Meaning{PartOfSpeech: meaning.PartOfSpeech}
			for _, definition := range meaning.Definitions {
				text := stripMarkup(definition.Definition)
				if text == "" {
					continue
				}
				converted.Definitions = append(converted.Definitions, text)
			}
			if len(converted.Definitions) > 0 {
				item.Meanings = append(item.Meanings, converted)
			}
		}
	}
	if len(item.Meanings) == 0 {
		return nil, nil
	}
	return item, nil
}
