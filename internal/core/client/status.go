package client

import (
	"fmt"
	"strings"
)

// Status is a client's immigration or residency category.
type Status int

// The zero Status is not a valid category.
const (
	StatusUnset Status = iota
	StatusStudyPermit
	StatusWorkPermit
	StatusPR
	StatusCitizen
	statusEnd
)

// Tone is the display category a status is rendered with.
type Tone int

const (
	ToneNone Tone = iota
	ToneInfo
	ToneWarning
	ToneSuccess
	TonePrimary
	toneEnd
)

// NumTones is the size of a table indexed by Tone.
const NumTones = int(toneEnd)

var statusLabels = [...]string{
	StatusUnset:       "",
	StatusStudyPermit: "Study Permit",
	StatusWorkPermit:  "Work Permit",
	StatusPR:          "PR",
	StatusCitizen:     "Citizen",
}

var statusTones = [...]Tone{
	StatusUnset:       ToneNone,
	StatusStudyPermit: ToneInfo,
	StatusWorkPermit:  ToneWarning,
	StatusPR:          ToneSuccess,
	StatusCitizen:     TonePrimary,
}

// Both tables must cover every status exactly; a mismatch fails to compile.
var (
	_ = [1]struct{}{}[len(statusLabels)-int(statusEnd)]
	_ = [1]struct{}{}[len(statusTones)-int(statusEnd)]
)

// Statuses lists the valid categories in display order.
var Statuses = []Status{StatusStudyPermit, StatusWorkPermit, StatusPR, StatusCitizen}

// Valid reports whether s is one of the four categories.
func (s Status) Valid() bool {
	return s > StatusUnset && s < statusEnd
}

// String returns the display label, e.g. "Study Permit".
func (s Status) String() string {
	if s < StatusUnset || s >= statusEnd {
		return ""
	}
	return statusLabels[s]
}

// Tone returns the display category for s.
func (s Status) Tone() Tone {
	if s < StatusUnset || s >= statusEnd {
		return ToneNone
	}
	return statusTones[s]
}

// RequiresExpiry reports whether the status is time-limited.
func (s Status) RequiresExpiry() bool {
	return s == StatusStudyPermit || s == StatusWorkPermit
}

// ForbidsExpiry reports whether an expiry date makes no sense for s.
func (s Status) ForbidsExpiry() bool {
	return s == StatusCitizen
}

// ParseStatus accepts a display label or its compact form, case-insensitively:
// "Study Permit", "StudyPermit", "study-permit" and "study_permit" are equivalent.
func ParseStatus(text string) (Status, error) {
	key := normalizeStatusKey(text)
	if key == "" {
		return StatusUnset, fmt.Errorf("status is empty")
	}
	for _, s := range Statuses {
		if normalizeStatusKey(s.String()) == key {
			return s, nil
		}
	}
	return StatusUnset, fmt.Errorf("unknown status %q", text)
}

// MarshalText encodes the display label so stored data stays readable.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a label; empty text yields StatusUnset.
func (s *Status) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = StatusUnset
		return nil
	}
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusNames returns the labels of all valid categories.
func StatusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = s.String()
	}
	return names
}

func normalizeStatusKey(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch r {
		case ' ', '-', '_', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
