// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the aikcal home directory (~/.aikcal).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable oracle prompt templates with hot reload
package file

import (
	"os"
	"path/filepath"
)

// DefaultDir returns ~/.aikcal.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".aikcal"), nil
}
