package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/fcurzi/Editor-TEI/internal/session"
	"github.com/fcurzi/Editor-TEI/tei"
)

var log = commonlog.GetLogger("teilint")

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("teilint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	profilePath := fs.String("profile", "", "path to a YAML profile override")
	doFormat := fs.Bool("format", false, "print the canonical form instead of validating")
	asJSON := fs.Bool("json", false, "emit the validation report as JSON")
	lang := fs.String("lang", "en", "diagnostic language (en, it)")
	autosave := fs.String("autosave", "", "SQLite database recording accepted snapshots")
	verbosity := fs.Int("v", 0, "log verbosity")
	fs.Usage = func() {
		_ = writef(stderr, "Usage: teilint [options] <document.xml>\n\n")
		_ = writef(stderr, "Validates a TEI document against the profile, or formats it with -format.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	commonlog.Configure(*verbosity, nil)
	tei.SetLanguage(*lang)

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writef(stderr, "error: exactly one XML file argument is required\n"); err != nil {
			return 1
		}
		fs.Usage()
		return 2
	}
	path := remaining[0]

	profile := tei.DefaultProfile()
	if *profilePath != "" {
		p, err := tei.LoadProfile(*profilePath)
		if err != nil {
			_ = writef(stderr, "error loading profile: %v\n", err)
			return 1
		}
		profile = p
	}

	body, err := os.ReadFile(path)
	if err != nil {
		_ = writef(stderr, "error reading document: %v\n", err)
		return 1
	}

	var sink tei.SnapshotSink
	if *autosave != "" {
		store, err := session.Open(*autosave)
		if err != nil {
			_ = writef(stderr, "error opening snapshot store: %v\n", err)
			return 1
		}
		defer store.Close()
		sink = store
	}

	ed := tei.NewEditor(string(body), tei.EditorOptions{Profile: profile, Sink: sink})

	if *doFormat {
		log.Infof("formatting %s", path)
		out, err := ed.FormatBuffer()
		if err != nil {
			_ = writef(stderr, "%v\n", err)
			return 1
		}
		if err := writef(stdout, "%s", out); err != nil {
			return 1
		}
		return 0
	}

	log.Infof("validating %s", path)
	report := tei.Report{Operation: "syntax", Messages: ed.CheckSyntax()}
	if !report.HasErrors() {
		report = tei.Report{Operation: "structure", Messages: ed.CheckStructure()}
	}

	var renderer tei.Renderer = tei.TextRenderer{}
	if *asJSON {
		renderer = tei.JSONRenderer{}
	}
	out, err := renderer.Render(report)
	if err != nil {
		_ = writef(stderr, "error rendering report: %v\n", err)
		return 1
	}
	if err := writef(stdout, "%s", out); err != nil {
		return 1
	}
	if *asJSON {
		if err := writef(stdout, "\n"); err != nil {
			return 1
		}
	}
	if report.HasErrors() {
		return 1
	}
	return 0
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
