package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote is for secondary, informational diagnostics.
	SevNote Severity = iota
	// SevWarning is for findings that do not fail the run by themselves.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// SeverityFromString parses the configuration spelling of a severity.
func SeverityFromString(s string) (Severity, bool) {
	switch s {
	case "note":
		return SevNote, true
	case "warning", "warn":
		return SevWarning, true
	case "error":
		return SevError, true
	}
	return SevNote, false
}
