package install

import (
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"
)

// CompatibilityTest classifies an install attempt before root detection.
// Only one test can be configured per installer.
type CompatibilityTest struct {
	Test         func(files []string, destinationPath string) domain.Verdict
	Message      string // Shown in the confirmation dialog or rejection error
	ShortMessage string // Shown in the warning notification after continuing
}

const defaultRejectMessage = "Ensure the mod file is compatible with the current game and try again."

const defaultWarnMessage = "You have installed a malformed mod. You might see unexpected results."

// PatternTest returns a test that rejects when any base name matches a reject
// pattern and asks for confirmation when any matches a confirm pattern.
// Patterns use filepath.Match syntax and are matched case-insensitively.
func PatternTest(reject, confirm []string) func([]string, string) domain.Verdict {
	return func(files []string, _ string) domain.Verdict {
		verdict := domain.VerdictProceed
		for _, file := range files {
			if IsDirEntry(file) {
				continue
			}
			name := strings.ToLower(filepath.Base(file))
			if matchAny(reject, name) {
				return domain.VerdictReject
			}
			if matchAny(confirm, name) {
				verdict = domain.VerdictProceedWithWarning
			}
		}
		return verdict
	}
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(strings.ToLower(p), name); ok {
			return true
		}
	}
	return false
}
