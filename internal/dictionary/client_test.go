package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func TestClient_GetItem(t *testing.T) {
	tests := []struct {
		name              string
		word              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want            *Item
		wantError       bool
		wantErrorString string
	}{
		{
			name: "entry with markup in definitions",
			word: "haus",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/de/haus", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`[{
					"word": "haus",
					"meanings": [
						{
							"partOfSpeech": "noun",
							"definitions": [
								{"definition": "a <i>building</i> for living in"},
								{"definition": "a dynasty"}
							]
						}
					]
				}]`))
			},
			want: &Item{
				Word: "haus",
				Meanings: []Meaning{
					{
						PartOfSpeech: "noun",
						Definitions:  []string{"a building for living in", "a dynasty"},
					},
				},
			},
		},
		{
			name: "unknown word returns nothing",
			word: "zzz",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "empty response returns nothing",
			word: "haus",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "server error",
			word: "haus",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantError:       true,
			wantErrorString: "response error 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := &Client{
				httpClient:       resty.New().SetBaseURL(server.URL),
				language:         "de",
				maxRetryAttempts: 1,
			}
			defer func() {
				_ = client.Close()
			}()

			got, err := client.GetItem(context.Background(), tt.word)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetItem_RetriesServerErrors(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word": "haus", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "a building"}]}]}]`))
	}))
	defer server.Close()

	client := &Client{
		httpClient:       resty.New().SetBaseURL(server.URL),
		language:         "de",
		maxRetryAttempts: 2,
	}
	defer func() {
		_ = client.Close()
	}()

	got, err := client.GetItem(context.Background(), "haus")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, requests)
}
