package tei

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const maxDepth = 3000

// SyntaxError reports a well-formedness failure from the parser adapter.
// Message is always non-empty; Line is 1-based when the underlying decoder
// reported a position, zero otherwise.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Element is a single node of a parsed document tree. The tree is built
// fresh for each validation or formatting call and is read-only once
// returned: callers walk it and discard it.
type Element struct {
	Name  xml.Name
	Attrs []xml.Attr
	Nodes []Node
}

// Node is one ordered child of an Element: either a sub-element or a run of
// character data. Exactly one field is set.
type Node struct {
	Element *Element
	Text    string
}

// Children returns the element children in document order.
func (el *Element) Children() []*Element {
	var out []*Element
	for _, n := range el.Nodes {
		if n.Element != nil {
			out = append(out, n.Element)
		}
	}
	return out
}

// Child returns the first child element with the given local name, or nil.
func (el *Element) Child(local string) *Element {
	for _, n := range el.Nodes {
		if n.Element != nil && n.Element.Name.Local == local {
			return n.Element
		}
	}
	return nil
}

// Text returns the element's direct character data, concatenated.
func (el *Element) Text() string {
	var b strings.Builder
	for _, n := range el.Nodes {
		if n.Element == nil {
			b.WriteString(n.Text)
		}
	}
	return b.String()
}

// Attr returns the value of the first attribute with the given local name,
// or the empty string.
func (el *Element) Attr(local string) string {
	for _, a := range el.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Find returns every descendant element with the given local name, in
// depth-first document order. The receiver itself is not considered.
func (el *Element) Find(local string) []*Element {
	var out []*Element
	for _, c := range el.Children() {
		if c.Name.Local == local {
			out = append(out, c)
		}
		out = append(out, c.Find(local)...)
	}
	return out
}

// Parse reads a whole document and returns its root element. It uses a
// strict well-formedness decoder: on any malformed input the returned error
// is a *SyntaxError carrying the decoder's diagnostic. Exactly one root
// element is required; anything but whitespace, comments, or processing
// instructions outside it is rejected.
func Parse(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	var root *Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if root == nil {
					return nil, &SyntaxError{Message: "document has no root element"}
				}
				return root, nil
			}
			return nil, wrapSyntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, syntaxAt(dec, "multiple root elements")
			}
			el, err := parseElement(dec, t, 0)
			if err != nil {
				return nil, err
			}
			root = el
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, syntaxAt(dec, "character data outside the root element")
			}
		case xml.EndElement:
			return nil, syntaxAt(dec, "unexpected end tag")
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement, depth int) (*Element, error) {
	if depth > maxDepth {
		return nil, syntaxAt(dec, "document nested too deeply")
	}
	start = start.Copy()
	el := &Element{Name: start.Name, Attrs: start.Attr}
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, syntaxAt(dec, fmt.Sprintf("unexpected EOF inside <%s>", el.Name.Local))
			}
			return nil, wrapSyntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t, depth+1)
			if err != nil {
				return nil, err
			}
			el.Nodes = append(el.Nodes, Node{Element: child})
		case xml.EndElement:
			// The strict decoder already guarantees the name matches.
			return el, nil
		case xml.CharData:
			el.Nodes = append(el.Nodes, Node{Text: string(t)})
		}
		// Comments, directives and processing instructions are dropped:
		// the canonical tree carries only elements and character data.
	}
}

func wrapSyntax(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		msg := se.Msg
		if msg == "" {
			msg = "malformed XML"
		}
		return &SyntaxError{Line: se.Line, Message: msg}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &SyntaxError{Message: "unexpected end of document"}
	}
	msg := err.Error()
	if msg == "" {
		msg = "malformed XML"
	}
	return &SyntaxError{Message: msg}
}

func syntaxAt(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &SyntaxError{Line: line, Message: msg}
}
