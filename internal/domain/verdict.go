package domain

// Verdict classifies an install attempt before any root detection happens
type Verdict int

const (
	VerdictProceed            Verdict = iota // Continue silently
	VerdictProceedWithWarning                // Ask the user before continuing
	VerdictReject                            // Abort the install
)

func (v Verdict) String() string {
	switch v {
	case VerdictProceed:
		return "proceed"
	case VerdictProceedWithWarning:
		return "warn"
	case VerdictReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseVerdict converts a string to Verdict
func ParseVerdict(s string) Verdict {
	switch s {
	case "warn", "confirm":
		return VerdictProceedWithWarning
	case "reject", "invalid":
		return VerdictReject
	default:
		return VerdictProceed
	}
}
