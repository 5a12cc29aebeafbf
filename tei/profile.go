package tei

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile names the fixed element vocabulary the structural validator
// enforces. Every field is a local tag name except Namespace, which is the
// namespace URI required on the root element. The validator is driven
// entirely by these constants so it can be retargeted to a different but
// similarly-shaped profile.
type Profile struct {
	Root            string `yaml:"root"`
	Namespace       string `yaml:"namespace"`
	Header          string `yaml:"header"`
	BodyWrapper     string `yaml:"bodyWrapper"`
	FileDesc        string `yaml:"fileDesc"`
	TitleStmt       string `yaml:"titleStmt"`
	PublicationStmt string `yaml:"publicationStmt"`
	SourceDesc      string `yaml:"sourceDesc"`
	Title           string `yaml:"title"`
	Body            string `yaml:"body"`
	// Paragraph is the block element used when generating content (draft
	// import, starter documents); it is not validated.
	Paragraph string `yaml:"paragraph"`
}

// DefaultProfile returns the TEI P5 vocabulary.
func DefaultProfile() Profile {
	return Profile{
		Root:            "TEI",
		Namespace:       "http://www.tei-c.org/ns/1.0",
		Header:          "teiHeader",
		BodyWrapper:     "text",
		FileDesc:        "fileDesc",
		TitleStmt:       "titleStmt",
		PublicationStmt: "publicationStmt",
		SourceDesc:      "sourceDesc",
		Title:           "title",
		Body:            "body",
		Paragraph:       "p",
	}
}

// ProfileError reports an invalid profile definition.
type ProfileError struct {
	Fields []string
	Err    error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid profile: %v", e.Err)
	}
	return "invalid profile: empty fields: " + strings.Join(e.Fields, ", ")
}

func (e *ProfileError) Unwrap() error { return e.Err }

// ParseProfile decodes a YAML profile definition. Fields omitted from the
// document keep their DefaultProfile values; a field set to the empty
// string is rejected.
func ParseProfile(body []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(body, &p); err != nil {
		return Profile{}, &ProfileError{Err: err}
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads a YAML profile definition from the given file path.
func LoadProfile(path string) (Profile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(body)
}

func (p Profile) validate() error {
	var empty []string
	for _, f := range []struct{ name, value string }{
		{"root", p.Root},
		{"namespace", p.Namespace},
		{"header", p.Header},
		{"bodyWrapper", p.BodyWrapper},
		{"fileDesc", p.FileDesc},
		{"titleStmt", p.TitleStmt},
		{"publicationStmt", p.PublicationStmt},
		{"sourceDesc", p.SourceDesc},
		{"title", p.Title},
		{"body", p.Body},
		{"paragraph", p.Paragraph},
	} {
		if strings.TrimSpace(f.value) == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return &ProfileError{Fields: empty}
	}
	return nil
}
