// Package config loads modkit settings and per-game installer definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"
)

// ParseConfigPath validates an explicit installers file path and returns it cleaned.
// The path must be absolute, free of ".." segments, and name an existing
// .yaml or .yml file. Validation failures wrap domain.ErrInvalidConfig.
func ParseConfigPath(path string) (string, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%s: %w", reason, domain.ErrInvalidConfig)
	}

	if path == "" {
		return "", invalid("config path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", invalid("config path must be absolute")
	}

	if strings.Contains(path, "..") {
		return "", invalid("config path contains invalid traversal")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", invalid("config file does not exist")
		}
		return "", err
	}

	if info.IsDir() {
		return "", invalid("config path is a directory, not a file")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return "", invalid("config file must have .yaml or .yml extension")
	}

	return filepath.Clean(path), nil
}
