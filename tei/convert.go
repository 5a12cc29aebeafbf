package tei

import (
	"bytes"
	"errors"
	"strings"

	goorg "github.com/niklasfasching/go-org/org"
	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	mdtext "github.com/yuin/goldmark/text"
)

// DraftFormat enumerates text-based draft sources.
type DraftFormat string

const (
	DraftMarkdown DraftFormat = "markdown"
	DraftOrg      DraftFormat = "org"
)

// ErrUnknownFormat signals an unsupported draft format.
var ErrUnknownFormat = errors.New("unknown draft format")

// ConvertDraft builds a conforming document from a markdown or org draft.
// The first heading seeds the document title; remaining headings and
// paragraphs become body paragraphs. The result is in canonical form.
func ConvertDraft(body string, format DraftFormat, profile Profile) (string, error) {
	switch format {
	case DraftMarkdown:
		return convertMarkdownDraft(body, profile)
	case DraftOrg:
		return convertOrgDraft(body, profile)
	default:
		return "", ErrUnknownFormat
	}
}

func convertMarkdownDraft(body string, profile Profile) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	src := []byte(body)
	reader := mdtext.NewReader(src)
	root := md.Parser().Parse(reader)

	var title string
	var paragraphs []string
	mdast.Walk(root, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n.(type) {
		case *mdast.Heading:
			text := extractMarkdownText(n, src)
			if text == "" {
				break
			}
			if title == "" {
				title = text
			} else {
				paragraphs = append(paragraphs, text)
			}
		case *mdast.Paragraph:
			if text := extractMarkdownText(n, src); text != "" {
				paragraphs = append(paragraphs, text)
			}
		}
		return mdast.WalkContinue, nil
	})

	if title == "" {
		title = "Converted draft"
	}
	return buildSkeleton(profile, title, paragraphs), nil
}

func convertOrgDraft(body string, profile Profile) (string, error) {
	o := goorg.New().Parse(strings.NewReader(body), "")
	out, err := o.Write(goorg.NewOrgWriter())
	if err != nil {
		return "", err
	}
	// First non-blank line seeds the title, the rest become paragraphs.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	title := "Converted draft"
	var paragraphs []string
	for _, line := range lines {
		text := strings.TrimSpace(strings.TrimLeft(line, "* "))
		if text == "" {
			continue
		}
		if title == "Converted draft" {
			title = text
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return buildSkeleton(profile, title, paragraphs), nil
}

func extractMarkdownText(n mdast.Node, src []byte) string {
	var b bytes.Buffer
	mdast.Walk(n, func(nn mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		if tn, ok := nn.(*mdast.Text); ok {
			b.Write(tn.Segment.Value(src))
		}
		return mdast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// RenderOutline renders a parsed document's title and body paragraphs as a
// markdown outline. Malformed input fails with the parser's *SyntaxError.
func RenderOutline(text string, profile Profile) (string, error) {
	root, err := Parse(text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if title := documentTitle(root, profile); title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	if wrapper := root.Child(profile.BodyWrapper); wrapper != nil {
		if body := wrapper.Child(profile.Body); body != nil {
			for _, block := range body.Children() {
				if t := collapseSpace(blockText(block)); t != "" {
					b.WriteString(t)
					b.WriteString("\n\n")
				}
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func documentTitle(root *Element, profile Profile) string {
	header := root.Child(profile.Header)
	if header == nil {
		return ""
	}
	fileDesc := header.Child(profile.FileDesc)
	if fileDesc == nil {
		return ""
	}
	titleStmt := fileDesc.Child(profile.TitleStmt)
	if titleStmt == nil {
		return ""
	}
	title := titleStmt.Child(profile.Title)
	if title == nil {
		return ""
	}
	return collapseSpace(blockText(title))
}

// blockText flattens an element's subtree to its character data.
func blockText(el *Element) string {
	var b strings.Builder
	for _, n := range el.Nodes {
		if n.Element != nil {
			b.WriteString(blockText(n.Element))
		} else {
			b.WriteString(n.Text)
		}
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
