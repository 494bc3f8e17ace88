package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileExists reports whether path exists. Errors other than "not exist" are returned.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

var writeData = func(file *os.File, data []byte) error { // mockable
	_, err := file.Write(data)
	return err
}

// WriteFile replaces path with data, creating parent directories as needed.
// The data goes to a temp file in the same directory first and is renamed
// into place, so path always holds either the old or the new content.
func WriteFile(data []byte, path string, permissions os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory structure: %w", err)
	}
	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpPath := file.Name()
	committed := false
	defer func() {
		if !committed {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = writeData(file, data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}
	if err = file.Chmod(permissions); err != nil {
		return fmt.Errorf("error setting file permissions: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("error syncing file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		committed = true
		return fmt.Errorf("error replacing file: %w", err)
	}
	committed = true
	return nil
}

// ReadJSONFile decodes the JSON document at path into data.
// A missing file is reported with an error wrapping os.ErrNotExist.
func ReadJSONFile(path string, data interface{}) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	if err = json.Unmarshal(fileBytes, data); err != nil {
		return fmt.Errorf("error unmarshalling JSON data: %w", err)
	}
	return nil
}

// WriteJSONFile replaces the file at path with the indented JSON encoding of data.
func WriteJSONFile(data interface{}, path string, permissions os.FileMode) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling data to JSON: %w", err)
	}
	return WriteFile(jsonData, path, permissions)
}
