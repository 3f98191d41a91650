package course

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode(%s) > %w", path, err)
	}
	return result, nil
}

// WriteYamlFile writes data to a YAML file.
func WriteYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

// loadYamlFilesAsMap loads every .yml file of a directory and returns the
// decoded contents keyed by the file basename without extension.
func loadYamlFilesAsMap[T any](dir string) (map[string]T, error) {
	filesMap := make(map[string]T)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		contents, err := readYamlFile[T](path)
		if err != nil {
			return fmt.Errorf("readYamlFile(%s) > %w", path, err)
		}

		basename := filepath.Base(path)
		filesMap[basename[:len(basename)-len(filepath.Ext(basename))]] = contents
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
	}

	return filesMap, nil
}
