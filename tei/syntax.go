package tei

import (
	"errors"
	"fmt"
)

// CheckSyntax reports whether text is well-formed XML. It always returns
// exactly one message: KindError with the parser's diagnostic on failure,
// KindSuccess otherwise. Nothing escapes its boundary; a panic during
// parsing is converted to an error message.
func CheckSyntax(text string) (msgs []Message) {
	defer func() {
		if r := recover(); r != nil {
			msgs = []Message{{Kind: KindError, Text: fmt.Sprint(r)}}
		}
	}()
	if _, err := Parse(text); err != nil {
		return []Message{{Kind: KindError, Text: syntaxText(err)}}
	}
	return []Message{successMessage("syntax_valid")}
}

// syntaxText extracts a non-empty diagnostic from a parse failure.
func syntaxText(err error) string {
	var se *SyntaxError
	if errors.As(err, &se) && se.Message != "" {
		return se.Error()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return T("syntax_fallback", nil)
}
