package decision

import (
	"fmt"
	"strings"
)

// Reason is a stable, machine-readable rejection code.
type Reason string

const (
	ReasonAlreadyImported Reason = "AlreadyImported"
	ReasonNoAudioTrack    Reason = "NoAudioTrack"
	ReasonNoVideoTrack    Reason = "NoVideoTrack"
	ReasonMinimumQuality  Reason = "MinimumQuality"
	ReasonUnableToParse   Reason = "UnableToParse"
	ReasonNotAnUpgrade    Reason = "NotAnUpgrade"
)

// Reasons lists every rejection code.
func Reasons() []Reason {
	return []Reason{
		ReasonAlreadyImported,
		ReasonNoAudioTrack,
		ReasonNoVideoTrack,
		ReasonMinimumQuality,
		ReasonUnableToParse,
		ReasonNotAnUpgrade,
	}
}

// Rejection is one failed rule.
type Rejection struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func reject(reason Reason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func (r Rejection) String() string {
	return string(r.Reason) + ": " + r.Message
}

// Decision is the aggregate outcome for one candidate.
// It is accepted iff it carries no rejections.
type Decision struct {
	Path       string      `json:"path"`
	Rejections []Rejection `json:"rejections,omitempty"`
}

// Accepted reports whether every rule passed.
func (d Decision) Accepted() bool {
	return len(d.Rejections) == 0
}

// Has reports whether the decision carries the given reason.
func (d Decision) Has(reason Reason) bool {
	for _, r := range d.Rejections {
		if r.Reason == reason {
			return true
		}
	}
	return false
}

// Reasons returns the rejection codes in rule order.
func (d Decision) Reasons() []Reason {
	out := make([]Reason, 0, len(d.Rejections))
	for _, r := range d.Rejections {
		out = append(out, r.Reason)
	}
	return out
}

func (d Decision) String() string {
	if d.Accepted() {
		return "accepted"
	}
	parts := make([]string, len(d.Rejections))
	for i, r := range d.Rejections {
		parts[i] = r.String()
	}
	return "rejected: " + strings.Join(parts, "; ")
}
