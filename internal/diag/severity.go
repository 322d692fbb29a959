package diag

// Severity defines the importance of a diagnostic. The zero value is not a
// valid severity.
type Severity uint8

const (
	// SevWarning is reported but the file is still formatted.
	SevWarning Severity = iota + 1
	// SevError blocks formatting of the file.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// label is the lower-case form used by the one-line renderings.
func (s Severity) label() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
