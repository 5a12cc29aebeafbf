package tei

import (
	"fmt"
	"strings"
)

// MIMEType is the content type handed to export collaborators.
const MIMEType = "application/xml"

// DefaultFilename is the suggested name for exported documents.
const DefaultFilename = "document.xml"

// SnapshotSink receives accepted buffer mutations. Persistence
// collaborators implement it; the core never reads anything back.
type SnapshotSink interface {
	SaveSnapshot(label, text string) error
}

// EditorOptions configures a new editing session.
type EditorOptions struct {
	// Profile drives structural validation; the zero value means
	// DefaultProfile.
	Profile Profile
	// Sink, when set, is notified of every accepted content mutation.
	Sink SnapshotSink
}

// Editor owns the document buffer and its history for one editing session.
// The buffer is always the history snapshot at the cursor; every operation
// reads or replaces the whole buffer.
type Editor struct {
	profile Profile
	history *History
	sink    SnapshotSink
}

// NewEditor starts a session. An empty initial text seeds the buffer with
// a minimal conforming document for the profile.
func NewEditor(initial string, opts EditorOptions) *Editor {
	profile := opts.Profile
	if profile.Root == "" {
		profile = DefaultProfile()
	}
	if initial == "" {
		initial = Starter(profile)
	}
	return &Editor{
		profile: profile,
		history: NewHistory(initial),
		sink:    opts.Sink,
	}
}

// Text returns the current document buffer.
func (e *Editor) Text() string { return e.history.Current() }

// Profile returns the profile the session validates against.
func (e *Editor) Profile() Profile { return e.profile }

// History exposes the session's undo/redo log.
func (e *Editor) History() *History { return e.history }

// SetText replaces the whole buffer and records a history snapshot.
func (e *Editor) SetText(text string) {
	e.history.Record(text)
	e.notify("edit", text)
}

// Undo moves the buffer one snapshot back; false means the boundary was
// reached and nothing changed.
func (e *Editor) Undo() (string, bool) { return e.history.Undo() }

// Redo moves the buffer one snapshot forward; false means the boundary was
// reached and nothing changed.
func (e *Editor) Redo() (string, bool) { return e.history.Redo() }

// CheckSyntax runs the well-formedness check over the current buffer.
func (e *Editor) CheckSyntax() []Message { return CheckSyntax(e.Text()) }

// CheckStructure runs the profile validation over the current buffer.
func (e *Editor) CheckStructure() []Message { return CheckStructure(e.Text(), e.profile) }

// FormatBuffer replaces the buffer with its canonical form and records the
// result. On failure the buffer and history are untouched and the error is
// a *FormatError.
func (e *Editor) FormatBuffer() (string, error) {
	out, err := Format(e.Text())
	if err != nil {
		return "", err
	}
	e.history.Record(out)
	e.notify("format", out)
	return out, nil
}

// Export hands the current buffer to a save collaborator as raw bytes with
// its MIME type and suggested filename.
func (e *Editor) Export() (data []byte, mime string, filename string) {
	return []byte(e.Text()), MIMEType, DefaultFilename
}

// notify forwards an accepted mutation to the sink. Sink errors never
// affect the session.
func (e *Editor) notify(label, text string) {
	if e.sink == nil {
		return
	}
	_ = e.sink.SaveSnapshot(label, text)
}

// Starter returns a minimal conforming document for the profile, in
// canonical form.
func Starter(p Profile) string {
	return buildSkeleton(p, "Untitled", nil)
}

// buildSkeleton assembles a conforming document with the given title and
// body paragraphs and returns its canonical form.
func buildSkeleton(p Profile, title string, paragraphs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s xmlns=%q>", p.Root, p.Namespace)
	fmt.Fprintf(&b, "<%s><%s><%s>", p.Header, p.FileDesc, p.TitleStmt)
	fmt.Fprintf(&b, "<%s>%s</%s>", p.Title, escapeText(title), p.Title)
	fmt.Fprintf(&b, "</%s><%s/><%s/></%s></%s>", p.TitleStmt, p.PublicationStmt, p.SourceDesc, p.FileDesc, p.Header)
	fmt.Fprintf(&b, "<%s><%s>", p.BodyWrapper, p.Body)
	for _, para := range paragraphs {
		fmt.Fprintf(&b, "<%s>%s</%s>", p.Paragraph, escapeText(para), p.Paragraph)
	}
	fmt.Fprintf(&b, "</%s></%s></%s>", p.Body, p.BodyWrapper, p.Root)
	out, err := Format(b.String())
	if err != nil {
		// The skeleton is built from validated profile names; a parse
		// failure here means the profile carries markup metacharacters.
		return b.String()
	}
	return out
}
