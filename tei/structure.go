package tei

import "fmt"

// CheckStructure validates text against the profile's element rules and
// returns the ordered diagnostics. Rules are checked in a fixed order:
//
//  1. the text must parse (a failure is the only message and stops here);
//  2. the root element's local name must match the profile root (a
//     mismatch is the only message and stops here);
//  3. the root must carry the profile namespace (checking continues);
//  4. the root must contain the header and body-wrapper elements;
//  5. a present header must contain the file description, which must in
//     turn contain the title, publication and source statements; a present
//     title statement must contain at least one title;
//  6. a present body wrapper must contain the body element.
//
// Errors are itemized, one message per missing requirement, so several
// problems can be fixed from one run. When no rule fails the result is a
// single KindSuccess message. Like CheckSyntax, panics are converted to a
// single error message.
func CheckStructure(text string, profile Profile) (msgs []Message) {
	defer func() {
		if r := recover(); r != nil {
			msgs = []Message{{Kind: KindError, Text: fmt.Sprint(r)}}
		}
	}()

	root, err := Parse(text)
	if err != nil {
		return []Message{errorMessage("profile_parse", map[string]string{"detail": syntaxText(err)})}
	}

	if root.Name.Local != profile.Root {
		return []Message{errorMessage("root_element", map[string]string{"root": profile.Root})}
	}

	var errs []Message
	missing := func(name, parent string) {
		errs = append(errs, errorMessage("missing_child", map[string]string{"name": name, "parent": parent}))
	}

	if root.Name.Space != profile.Namespace {
		errs = append(errs, errorMessage("namespace", nil))
	}

	header := root.Child(profile.Header)
	wrapper := root.Child(profile.BodyWrapper)
	if header == nil {
		missing(profile.Header, profile.Root)
	}
	if wrapper == nil {
		missing(profile.BodyWrapper, profile.Root)
	}

	if header != nil {
		fileDesc := header.Child(profile.FileDesc)
		if fileDesc == nil {
			missing(profile.FileDesc, profile.Header)
		} else {
			titleStmt := fileDesc.Child(profile.TitleStmt)
			if titleStmt == nil {
				missing(profile.TitleStmt, profile.FileDesc)
			}
			if fileDesc.Child(profile.PublicationStmt) == nil {
				missing(profile.PublicationStmt, profile.FileDesc)
			}
			if fileDesc.Child(profile.SourceDesc) == nil {
				missing(profile.SourceDesc, profile.FileDesc)
			}
			if titleStmt != nil && titleStmt.Child(profile.Title) == nil {
				missing(profile.Title, profile.TitleStmt)
			}
		}
	}

	if wrapper != nil && wrapper.Child(profile.Body) == nil {
		missing(profile.Body, profile.BodyWrapper)
	}

	if len(errs) == 0 {
		return []Message{successMessage("conforms")}
	}
	return errs
}
