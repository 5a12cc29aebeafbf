package tei

import (
	"encoding/xml"
	"strings"
)

// FormatError reports an attempt to format malformed input. The buffer that
// failed to format is left untouched by callers; Unwrap exposes the
// underlying *SyntaxError.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return T("format_syntax", nil) }

func (e *FormatError) Unwrap() error { return e.Err }

// FormatOptions controls canonical serialization.
type FormatOptions struct {
	// Indent is the indentation unit; default is two spaces.
	Indent string
}

// Format re-serializes a well-formed document into its canonical shape and
// returns the new text. Malformed input fails with a *FormatError and no
// partial output. The result is idempotent: formatting already-formatted
// text returns it unchanged.
func Format(text string) (string, error) {
	return FormatWithOptions(text, FormatOptions{})
}

// FormatWithOptions is Format with an explicit indentation unit.
//
// Canonical shape: one element per line at a depth-proportional indent;
// elements holding only character data are kept on one line with that text
// trimmed; empty elements are self-closing; elements with mixed content are
// serialized inline with their character data untouched. Whitespace inside
// a tag's own markup collapses to single spaces by re-encoding, and no line
// carries leading or trailing whitespace beyond the indent.
func FormatWithOptions(text string, opts FormatOptions) (string, error) {
	root, err := Parse(text)
	if err != nil {
		return "", &FormatError{Err: err}
	}
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	var b strings.Builder
	sc := &nsScope{}
	writeElement(&b, root, 0, indent, sc)
	b.WriteString("\n")
	return b.String(), nil
}

// nsScope tracks in-scope namespace declarations so element names can be
// re-qualified with the prefixes the document declared.
type nsScope struct {
	ns []xml.Name // Space is the URI, Local the prefix ("" for default)
}

func (s *nsScope) push(attrs []xml.Attr) int {
	mark := len(s.ns)
	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			s.ns = append(s.ns, xml.Name{Space: a.Value, Local: a.Name.Local})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			s.ns = append(s.ns, xml.Name{Space: a.Value, Local: ""})
		}
	}
	return mark
}

func (s *nsScope) pop(mark int) { s.ns = s.ns[:mark] }

// qualify rebuilds the prefixed form of an element name from the closest
// in-scope declaration for its namespace.
func (s *nsScope) qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	for i := len(s.ns) - 1; i >= 0; i-- {
		if s.ns[i].Space == name.Space {
			if s.ns[i].Local == "" {
				return name.Local
			}
			return s.ns[i].Local + ":" + name.Local
		}
	}
	return name.Local
}

func writeElement(b *strings.Builder, el *Element, depth int, indent string, sc *nsScope) {
	mark := sc.push(el.Attrs)
	defer sc.pop(mark)

	pad := strings.Repeat(indent, depth)
	children := el.Children()
	switch {
	case len(children) == 0:
		text := strings.TrimSpace(el.Text())
		b.WriteString(pad)
		if text == "" {
			writeTag(b, el, sc, true)
			break
		}
		writeTag(b, el, sc, false)
		b.WriteString(escapeText(text))
		writeEndTag(b, el, sc)
	case strings.TrimSpace(el.Text()) != "":
		// Mixed content: serialize the whole element inline, character
		// data untouched.
		b.WriteString(pad)
		writeInline(b, el, sc, false)
	default:
		b.WriteString(pad)
		writeTag(b, el, sc, false)
		for _, c := range children {
			b.WriteString("\n")
			writeElement(b, c, depth+1, indent, sc)
		}
		b.WriteString("\n")
		b.WriteString(pad)
		writeEndTag(b, el, sc)
	}
}

// writeInline serializes an element and its whole subtree on one line.
// When pushScope is true the element's own namespace declarations are
// pushed first (the caller has not done so).
func writeInline(b *strings.Builder, el *Element, sc *nsScope, pushScope bool) {
	if pushScope {
		mark := sc.push(el.Attrs)
		defer sc.pop(mark)
	}
	if len(el.Nodes) == 0 {
		writeTag(b, el, sc, true)
		return
	}
	writeTag(b, el, sc, false)
	for _, n := range el.Nodes {
		if n.Element != nil {
			writeInline(b, n.Element, sc, true)
		} else {
			b.WriteString(escapeText(n.Text))
		}
	}
	writeEndTag(b, el, sc)
}

func writeTag(b *strings.Builder, el *Element, sc *nsScope, selfClose bool) {
	b.WriteString("<")
	b.WriteString(sc.qualify(el.Name))
	for _, a := range el.Attrs {
		b.WriteString(" ")
		b.WriteString(attrName(a.Name, sc))
		b.WriteString(`="`)
		b.WriteString(escapeText(a.Value))
		b.WriteString(`"`)
	}
	if selfClose {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
}

func writeEndTag(b *strings.Builder, el *Element, sc *nsScope) {
	b.WriteString("</")
	b.WriteString(sc.qualify(el.Name))
	b.WriteString(">")
}

// xmlNamespace is the predeclared namespace the decoder resolves the xml:
// prefix to.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

func attrName(name xml.Name, sc *nsScope) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	case name.Space == xmlNamespace:
		return "xml:" + name.Local
	}
	// The decoder resolves declared prefixes to their URI; look the prefix
	// back up.
	for i := len(sc.ns) - 1; i >= 0; i-- {
		if sc.ns[i].Space == name.Space && sc.ns[i].Local != "" {
			return sc.ns[i].Local + ":" + name.Local
		}
	}
	return name.Space + ":" + name.Local
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
