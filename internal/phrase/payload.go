package phrase

import "errors"

// ErrEmptyContent is returned by BuildPayload for blank input.
var ErrEmptyContent = errors.New("no content to import")

// Payload is the body sent to the import endpoint.
type Payload struct {
	Content string `json:"content"`
	// Separator is the canonical label of the resolved separator. It is
	// omitted when none was resolved and the importer detects its own.
	Separator string `json:"separator,omitempty"`
}

// Mode returns the separator mode the payload asks for.
// An omitted label maps to ModeAuto.
func (p Payload) Mode() (Mode, error) {
	return ParseMode(p.Separator)
}

// BuildPayload packages raw for submission.
//
// It refuses blank input and any input whose preview reports an error, so a
// payload never exists for text the preview would reject. The label comes
// from resolving the full text.
func BuildPayload(raw string, mode Mode) (Payload, error) {
	if IsBlank(raw) {
		return Payload{}, ErrEmptyContent
	}
	if p := PreviewText(raw, mode); p.Err != nil {
		return Payload{}, p.Err
	}

	pl := Payload{Content: raw}
	if res := Parse(raw, mode); !res.Separator.IsZero() {
		pl.Separator = res.Separator.Label()
	}
	return pl, nil
}
