package diag

// Severity ranks a diagnostic's importance. Numerically higher is worse,
// so a Bag can test "HasErrors" with a single comparison.
type Severity uint8

const (
	SevWarning Severity = iota
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
