package install

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"
)

// SupportCheck decides whether an installer can handle a file list
type SupportCheck interface {
	CheckSupport(ctx context.Context, files []string, gameID string, state State) (domain.SupportedResult, error)
}

// SupportCheckFunc adapts a function to SupportCheck
type SupportCheckFunc func(ctx context.Context, files []string, gameID string, state State) (domain.SupportedResult, error)

// CheckSupport calls f
func (f SupportCheckFunc) CheckSupport(ctx context.Context, files []string, gameID string, state State) (domain.SupportedResult, error) {
	return f(ctx, files, gameID, state)
}

// IsFomod reports whether the file list contains a FOMOD installer script
func IsFomod(files []string) bool {
	for _, file := range files {
		if strings.ToLower(filepath.Base(file)) == "moduleconfig.xml" &&
			strings.ToLower(filepath.Base(filepath.Dir(file))) == "fomod" {
			return true
		}
	}
	return false
}

// ExcludeFomod rejects packages that ship their own FOMOD installer
func ExcludeFomod() SupportCheck {
	return SupportCheckFunc(func(_ context.Context, files []string, _ string, _ State) (domain.SupportedResult, error) {
		return domain.SupportedResult{Supported: !IsFomod(files), RequiredFiles: []string{}}, nil
	})
}

// RequireAny is supported when at least one base name matches a pattern.
// Matching files are reported as required.
func RequireAny(patterns ...string) SupportCheck {
	return SupportCheckFunc(func(_ context.Context, files []string, _ string, _ State) (domain.SupportedResult, error) {
		required := []string{}
		for _, file := range files {
			if IsDirEntry(file) {
				continue
			}
			if matchAny(patterns, strings.ToLower(filepath.Base(file))) {
				required = append(required, file)
			}
		}
		return domain.SupportedResult{Supported: len(required) > 0, RequiredFiles: required}, nil
	})
}
