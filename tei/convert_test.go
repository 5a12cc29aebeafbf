package tei

import (
	"errors"
	"strings"
	"testing"
)

const markdownDraft = `# My Edition

First paragraph of the draft.

## Background

Second paragraph with *emphasis*.
`

func TestConvertMarkdownDraft(t *testing.T) {
	out, err := ConvertDraft(markdownDraft, DraftMarkdown, DefaultProfile())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	msgs := CheckStructure(out, DefaultProfile())
	if len(msgs) != 1 || msgs[0].Kind != KindSuccess {
		t.Fatalf("converted draft must conform: %+v\n%s", msgs, out)
	}
	if !strings.Contains(out, "<title>My Edition</title>") {
		t.Fatalf("first heading should seed the title:\n%s", out)
	}
	if !strings.Contains(out, "First paragraph of the draft.") {
		t.Fatalf("paragraph lost:\n%s", out)
	}
	if !strings.Contains(out, "<p>Background</p>") {
		t.Fatalf("later headings should become paragraphs:\n%s", out)
	}
}

func TestConvertOrgDraft(t *testing.T) {
	src := "* My Edition\n\nFirst paragraph.\n"
	out, err := ConvertDraft(src, DraftOrg, DefaultProfile())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	msgs := CheckStructure(out, DefaultProfile())
	if len(msgs) != 1 || msgs[0].Kind != KindSuccess {
		t.Fatalf("converted draft must conform: %+v\n%s", msgs, out)
	}
	if !strings.Contains(out, "<title>My Edition</title>") {
		t.Fatalf("org heading should seed the title:\n%s", out)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	_, err := ConvertDraft("x", DraftFormat("rst"), DefaultProfile())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConvertEscapesMarkup(t *testing.T) {
	out, err := ConvertDraft("# A <b> & title\n\ntext\n", DraftMarkdown, DefaultProfile())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := Parse(out); err != nil {
		t.Fatalf("converted output must be well-formed: %v\n%s", err, out)
	}
}

func TestRenderOutline(t *testing.T) {
	doc, err := ConvertDraft(markdownDraft, DraftMarkdown, DefaultProfile())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	outline, err := RenderOutline(doc, DefaultProfile())
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if !strings.HasPrefix(outline, "# My Edition") {
		t.Fatalf("outline missing title:\n%s", outline)
	}
	if !strings.Contains(outline, "First paragraph of the draft.") {
		t.Fatalf("outline missing paragraph:\n%s", outline)
	}
}

func TestRenderOutlineMalformed(t *testing.T) {
	if _, err := RenderOutline("<a>", DefaultProfile()); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}
