package checkout

import "fmt"

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further submission is accepted.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded
}

// CanSubmit reports whether a submission may start from s.
func (s Status) CanSubmit() bool {
	return s == StatusIdle || s == StatusFailed
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusIdle, StatusSubmitting, StatusSucceeded, StatusFailed} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown checkout status %q", text)
}

// State is a snapshot of a flow. Reference is set only when Succeeded (and
// may still be empty); Error only when Failed.
type State struct {
	Status    Status `json:"status"`
	Reference string `json:"reference,omitempty"`
	Error     string `json:"error,omitempty"`
}
