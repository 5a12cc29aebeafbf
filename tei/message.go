package tei

import "strings"

// Kind classifies a validation message.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

// Message is one human-readable validation result. A validation run returns
// an ordered slice of messages; a successful run carries exactly one
// KindSuccess entry and a failing run carries only KindError entries.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func errorMessage(code string, data map[string]string) Message {
	return Message{Kind: KindError, Text: T(code, data)}
}

func successMessage(code string) Message {
	return Message{Kind: KindSuccess, Text: T(code, nil)}
}

// Translator retrieves localized texts for diagnostic codes. data provides
// optional values spliced into the message (for example the missing element
// name).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "it":
		switch code {
		case "syntax_valid":
			msg = "la sintassi XML è valida"
		case "syntax_fallback":
			msg = "il documento XML non è ben formato"
		case "profile_parse":
			msg = "errore di validazione del profilo: {detail}"
		case "root_element":
			msg = "l'elemento radice deve essere <{root}>"
		case "namespace":
			msg = "namespace obbligatorio mancante o errato"
		case "missing_child":
			msg = "elemento obbligatorio <{name}> mancante in <{parent}>"
		case "conforms":
			msg = "il documento è conforme al profilo"
		case "format_syntax":
			msg = "impossibile formattare il documento: correggere prima gli errori di sintassi"
		}
	default: // "en"
		switch code {
		case "syntax_valid":
			msg = "the XML syntax is valid"
		case "syntax_fallback":
			msg = "the XML document is not well-formed"
		case "profile_parse":
			msg = "profile validation error: {detail}"
		case "root_element":
			msg = "root element must be <{root}>"
		case "namespace":
			msg = "required namespace missing or incorrect"
		case "missing_child":
			msg = "required element <{name}> is missing inside <{parent}>"
		case "conforms":
			msg = "document conforms to the profile"
		case "format_syntax":
			msg = "cannot format the document: fix syntax errors first"
		}
	}
	if msg == "" {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"it").
func SetLanguage(lang string) {
	if lang != "it" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation; nil restores the
// built-in English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
