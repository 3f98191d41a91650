package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// DataDirectory is the root under which all logs, definitions and
	// downloaded resources live. Relative sub-directory overrides are not
	// supported; an override must be an absolute path.
	DataDirectory string `mapstructure:"data_directory" validate:"required"`

	Courses      CoursesConfig      `mapstructure:"courses"`
	Lexicons     LexiconsConfig     `mapstructure:"lexicons"`
	Frequency    FrequencyConfig    `mapstructure:"frequency"`
	Sentences    SentencesConfig    `mapstructure:"sentences"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
}

type CoursesConfig struct {
	Directory    string `mapstructure:"directory" validate:"omitempty,dir"`
	LogDirectory string `mapstructure:"log_directory" validate:"omitempty,dir"`
}

type LexiconsConfig struct {
	Directory    string `mapstructure:"directory" validate:"omitempty,dir"`
	LogDirectory string `mapstructure:"log_directory" validate:"omitempty,dir"`
}

type FrequencyConfig struct {
	Directory string `mapstructure:"directory" validate:"omitempty,dir"`
}

type SentencesConfig struct {
	Directory string `mapstructure:"directory" validate:"omitempty,dir"`
}

type DictionariesConfig struct {
	CacheDirectory string `mapstructure:"cache_directory" validate:"omitempty,dir"`
	Endpoint       string `mapstructure:"endpoint" validate:"omitempty,url"`
	Key            string `mapstructure:"key"`
}

// CoursesDirectory is where the course definition files live.
func (c *Config) CoursesDirectory() string {
	return c.dir(c.Courses.Directory, "courses")
}

// LearnLogDirectory is where the course response logs live.
func (c *Config) LearnLogDirectory() string {
	return c.dir(c.Courses.LogDirectory, "learn")
}

// LexiconsDirectory is where the lexicon definition files live.
func (c *Config) LexiconsDirectory() string {
	return c.dir(c.Lexicons.Directory, "lexicons")
}

// LexiconLogDirectory is where the lexicon response logs live.
func (c *Config) LexiconLogDirectory() string {
	return c.dir(c.Lexicons.LogDirectory, "lexicon")
}

// FrequencyDirectory is where the word frequency lists live.
func (c *Config) FrequencyDirectory() string {
	return c.dir(c.Frequency.Directory, "frequency")
}

// SentencesDirectory is where the sentence corpus databases live.
func (c *Config) SentencesDirectory() string {
	return c.dir(c.Sentences.Directory, "sentences")
}

// DictionaryCacheDirectory is where fetched dictionary items are cached.
func (c *Config) DictionaryCacheDirectory() string {
	return c.dir(c.Dictionaries.CacheDirectory, "dictionaries")
}

func (c *Config) dir(override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.DataDirectory, name)
}

// EnsureLayout creates the data directory and every standard sub-directory
// that is not overridden to an existing location.
func (c *Config) EnsureLayout() error {
	directories := []string{
		c.DataDirectory,
		c.CoursesDirectory(),
		c.LearnLogDirectory(),
		c.LexiconsDirectory(),
		c.LexiconLogDirectory(),
		c.FrequencyDirectory(),
		c.SentencesDirectory(),
		c.DictionaryCacheDirectory(),
	}
	for _, directory := range directories {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
		}
	}
	return nil
}

func Load(configFile string) (*Config, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator() > %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kioku")
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault("data_directory", filepath.Join(home, ".kioku"))
	}
	v.SetDefault("dictionaries.endpoint", "https://api.dictionaryapi.dev/api/v2/entries")

	// The dictionary key comes from the environment only, never from the
	// config file.
	if err := v.BindEnv("dictionaries.key", "DICTIONARY_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind DICTIONARY_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.endpoint", "DICTIONARY_API_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("failed to bind DICTIONARY_API_ENDPOINT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
