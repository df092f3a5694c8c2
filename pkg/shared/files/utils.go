package files

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// ValidatePath checks if the given path is a valid file path for reading.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}

	if info.Mode()&os.ModeType != 0 {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// ReadFile validates path and reads the whole file into memory.
func ReadFile(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteJsonFile writes JSON data to the specified file, truncating any previous content.
func WriteJsonFile(outputFile string, data []byte) (err error) {
	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed closing file: %w", cerr)
		}
	}()

	datawriter := bufio.NewWriter(file)
	if _, err := datawriter.Write(data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}
	if err := datawriter.Flush(); err != nil {
		return fmt.Errorf("error flushing data to file: %w", err)
	}

	return nil
}

// ResolveOutputPath returns the file the result should be written to.
// An empty output means the input is rewritten in place; an existing directory
// receives a file named after the input.
func ResolveOutputPath(inputPath, outputPath string) (string, error) {
	if outputPath == "" {
		return inputPath, nil
	}

	path, err := ExpandPath(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap path %q: %w", outputPath, err)
	}

	info, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to unwrap path %q: %w", path, err)
	}
	if err == nil && info.IsDir() {
		return filepath.Join(path, filepath.Base(inputPath)), nil
	}
	return path, nil
}
