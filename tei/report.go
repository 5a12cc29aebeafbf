package tei

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Report pairs an operation name with its ordered validation messages.
// The core defines only content and order; rendering beyond these two
// encodings belongs to the presentation layer.
type Report struct {
	Operation string    `json:"operation"`
	Messages  []Message `json:"messages"`
}

// HasErrors reports whether any message is a KindError.
func (r Report) HasErrors() bool {
	for _, m := range r.Messages {
		if m.Kind == KindError {
			return true
		}
	}
	return false
}

// Renderer renders a Report to a target representation.
type Renderer interface {
	Render(Report) ([]byte, error)
}

// TextRenderer emits one line per message, prefixed with its kind.
type TextRenderer struct{}

func (TextRenderer) Render(r Report) ([]byte, error) {
	var buf bytes.Buffer
	for _, m := range r.Messages {
		buf.WriteString(string(m.Kind))
		buf.WriteString(": ")
		buf.WriteString(m.Text)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// JSONRenderer emits the report as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Render(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
