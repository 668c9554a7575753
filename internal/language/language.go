package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize canonicalizes a model-reported language code ("en", "eng",
// "english") to its base BCP 47 form. Unrecognized input is returned
// lowercased as-is.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	// Parse accepts any well-formed subtag, so a made-up code can still yield
	// a tag; only trust bases the matcher is confident about.
	base, conf := tag.Base()
	if conf < language.High {
		return code
	}
	return base.String()
}

// DisplayName returns the English display name for a language code, falling
// back to the input when it cannot be parsed.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
