package tei

import (
	"errors"
	"strings"
	"testing"
)

const conformingDoc = `<TEI xmlns="http://www.tei-c.org/ns/1.0"><teiHeader><fileDesc><titleStmt><title>T</title></titleStmt><publicationStmt/><sourceDesc/></fileDesc></teiHeader><text><body/></text></TEI>`

func TestParseTreeShape(t *testing.T) {
	root, err := Parse(conformingDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Name.Local != "TEI" {
		t.Fatalf("root local name: %q", root.Name.Local)
	}
	if root.Name.Space != "http://www.tei-c.org/ns/1.0" {
		t.Fatalf("root namespace not resolved: %q", root.Name.Space)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 child elements, got %d", len(root.Children()))
	}
	header := root.Child("teiHeader")
	if header == nil {
		t.Fatalf("teiHeader not found")
	}
	if header.Name.Space != root.Name.Space {
		t.Fatalf("child did not inherit default namespace: %q", header.Name.Space)
	}
	titles := root.Find("title")
	if len(titles) != 1 || strings.TrimSpace(titles[0].Text()) != "T" {
		t.Fatalf("title lookup failed: %+v", titles)
	}
}

func TestParseAttributes(t *testing.T) {
	root, err := Parse(`<doc version="1.2" xml:lang="it"><a/></doc>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := root.Attr("version"); got != "1.2" {
		t.Fatalf("attr version: %q", got)
	}
	if got := root.Attr("lang"); got != "it" {
		t.Fatalf("attr lang: %q", got)
	}
	if got := root.Attr("absent"); got != "" {
		t.Fatalf("absent attr should be empty, got %q", got)
	}
}

func TestParseTextNodesKeepOrder(t *testing.T) {
	root, err := Parse(`<p>before <hi>x</hi> after</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.Nodes) != 3 {
		t.Fatalf("expected 3 ordered nodes, got %d", len(root.Nodes))
	}
	if root.Nodes[0].Text != "before " || root.Nodes[2].Text != " after" {
		t.Fatalf("text runs wrong: %+v", root.Nodes)
	}
	if root.Nodes[1].Element == nil || root.Nodes[1].Element.Name.Local != "hi" {
		t.Fatalf("middle node should be <hi>")
	}
	if root.Text() != "before  after" {
		t.Fatalf("direct text: %q", root.Text())
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"unclosed":       `<TEI><teiHeader></TEI>`,
		"mismatched":     `<a><b></a></b>`,
		"empty":          ``,
		"whitespace":     "  \n\t",
		"multiple roots": `<a/><b/>`,
		"trailing text":  `<a/>junk`,
		"bad entity":     `<a>&nosuch;</a>`,
	}
	for name, src := range cases {
		_, err := Parse(src)
		if err == nil {
			t.Fatalf("%s: expected parse failure", name)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected *SyntaxError, got %T", name, err)
		}
		if se.Message == "" || se.Error() == "" {
			t.Fatalf("%s: diagnostic must be non-empty", name)
		}
	}
}

func TestParseAllowsProlog(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!-- note -->\n<a/>\n"
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Name.Local != "a" {
		t.Fatalf("root: %q", root.Name.Local)
	}
}

func TestParseTreeIsFresh(t *testing.T) {
	first, err := Parse(`<a><b/></a>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := Parse(`<a><b/></a>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if first == second || first.Child("b") == second.Child("b") {
		t.Fatalf("trees must not be shared between calls")
	}
}
