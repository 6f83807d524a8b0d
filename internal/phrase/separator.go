package phrase

import (
	"errors"
	"fmt"
	"strings"
)

// DetectionSampleSize is the number of leading lines inspected by auto-detection.
const DetectionSampleSize = 5

// minSeparatorOccurrences is how many times a candidate must appear in a
// line for that line to vote for it (two separators give three columns).
const minSeparatorOccurrences = 2

var (
	// ErrNoSeparatorDetected is reported when auto mode finds no candidate
	// separator in the sampled lines.
	ErrNoSeparatorDetected = errors.New("no separator detected")

	// ErrSeparatorMismatch is reported when an explicitly chosen separator
	// does not split the first line into at least three fields.
	ErrSeparatorMismatch = errors.New("separator mismatch")

	// ErrUnknownSeparator is returned by ParseMode for unrecognised labels.
	ErrUnknownSeparator = errors.New("unknown separator")
)

// Mode is the separator selection made by the caller before parsing.
type Mode int

const (
	ModeAuto Mode = iota
	ModeSemicolon
	ModeComma
	ModePipe
	ModeTab
)

// Separator is a concrete column separator character.
type Separator rune

const (
	Semicolon Separator = ';'
	Comma     Separator = ','
	Pipe      Separator = '|'
	Tab       Separator = '\t'
)

// candidates is the detection order. Earlier entries win ties.
var candidates = [...]Separator{Semicolon, Comma, Pipe, Tab}

// Label returns the canonical wire label: ";", ",", "|" or "tab".
// The zero Separator has an empty label.
func (s Separator) Label() string {
	switch s {
	case Tab:
		return "tab"
	case Semicolon, Comma, Pipe:
		return string(rune(s))
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (s Separator) String() string {
	if l := s.Label(); l != "" {
		return l
	}
	return "none"
}

// MarshalText encodes the separator as its label.
func (s Separator) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}

// IsZero reports whether no separator has been resolved.
func (s Separator) IsZero() bool {
	return s == 0
}

// String implements fmt.Stringer using the same labels ParseMode accepts.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeSemicolon:
		return ";"
	case ModeComma:
		return ","
	case ModePipe:
		return "|"
	case ModeTab:
		return "tab"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Explicit returns the separator an explicit mode stands for.
// It returns false for ModeAuto.
func (m Mode) Explicit() (Separator, bool) {
	switch m {
	case ModeSemicolon:
		return Semicolon, true
	case ModeComma:
		return Comma, true
	case ModePipe:
		return Pipe, true
	case ModeTab:
		return Tab, true
	default:
		return 0, false
	}
}

// ParseMode converts a user or wire label into a Mode.
// An empty label selects auto-detection.
func ParseMode(label string) (Mode, error) {
	if label == "\t" {
		return ModeTab, nil
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "auto":
		return ModeAuto, nil
	case ";", "semicolon":
		return ModeSemicolon, nil
	case ",", "comma":
		return ModeComma, nil
	case "|", "pipe":
		return ModePipe, nil
	case "tab", `\t`:
		return ModeTab, nil
	default:
		return ModeAuto, fmt.Errorf("%w: %q", ErrUnknownSeparator, label)
	}
}

// Resolve determines the separator for the given lines.
//
// Explicit modes resolve to their character without looking at the content;
// callers validate the choice against the first line (see checkFirstLine).
// ModeAuto scores every candidate by the number of sampled lines containing
// it at least twice and picks the strictly highest score, so ties keep the
// earlier candidate in ; , | tab order.
func Resolve(mode Mode, lines []string) (Separator, error) {
	if sep, ok := mode.Explicit(); ok {
		return sep, nil
	}

	sample := lines
	if len(sample) > DetectionSampleSize {
		sample = sample[:DetectionSampleSize]
	}

	var best Separator
	bestScore := 0
	for _, c := range candidates {
		score := 0
		for _, line := range sample {
			if strings.Count(line, string(rune(c))) >= minSeparatorOccurrences {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore == 0 {
		return 0, ErrNoSeparatorDetected
	}
	return best, nil
}

// checkFirstLine rejects an explicit separator that does not split the
// first input line into at least three fields.
func checkFirstLine(first string, sep Separator) error {
	if len(splitFields(first, sep)) < columnCount {
		return fmt.Errorf("%w: %q does not split the first line into %d columns",
			ErrSeparatorMismatch, sep.Label(), columnCount)
	}
	return nil
}
