package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(`data_directory: `+dir+`
dictionaries:
  endpoint: https://dictionary.example.com/api
`), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDirectory)
	assert.Equal(t, "https://dictionary.example.com/api", cfg.Dictionaries.Endpoint)
	assert.Equal(t, filepath.Join(dir, "courses"), cfg.CoursesDirectory())
	assert.Equal(t, filepath.Join(dir, "learn"), cfg.LearnLogDirectory())
	assert.Equal(t, filepath.Join(dir, "lexicons"), cfg.LexiconsDirectory())
	assert.Equal(t, filepath.Join(dir, "lexicon"), cfg.LexiconLogDirectory())
	assert.Equal(t, filepath.Join(dir, "frequency"), cfg.FrequencyDirectory())
	assert.Equal(t, filepath.Join(dir, "sentences"), cfg.SentencesDirectory())
	assert.Equal(t, filepath.Join(dir, "dictionaries"), cfg.DictionaryCacheDirectory())
}

func TestLoad_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "wordlists")
	require.NoError(t, os.Mkdir(override, 0755))
	configFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(`data_directory: `+dir+`
frequency:
  directory: `+override+`
`), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, override, cfg.FrequencyDirectory())
}

func TestLoad_KeyFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(`data_directory: `+dir+"\n"), 0644))
	t.Setenv("DICTIONARY_API_KEY", "secret")

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Dictionaries.Key)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name: "override is not an existing directory",
			contents: `frequency:
  directory: /no/such/directory
`,
			want: "frequency.directory must be an existing directory",
		},
		{
			name: "endpoint is not a url",
			contents: `dictionaries:
  endpoint: not a url
`,
			want: "dictionaries.endpoint must be a valid URL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			configFile := filepath.Join(dir, "config.yml")
			contents := "data_directory: " + dir + "\n" + tc.contents
			require.NoError(t, os.WriteFile(configFile, []byte(contents), 0644))

			_, err := Load(configFile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConfig_EnsureLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &Config{DataDirectory: dir}

	require.NoError(t, cfg.EnsureLayout())

	for _, sub := range []string{"courses", "learn", "lexicons", "lexicon", "frequency", "sentences", "dictionaries"} {
		assert.DirExists(t, filepath.Join(dir, sub))
	}
}
