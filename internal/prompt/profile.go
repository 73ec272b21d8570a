package prompt

import "strings"

// Profile names a source language and its definite articles.
type Profile struct {
	Name     string
	Articles []string
}

var profiles = map[string]Profile{
	"es": {Name: "Spanish", Articles: []string{"el", "la", "los", "las"}},
	"pt": {Name: "Portuguese", Articles: []string{"o", "a", "os", "as"}},
	"fr": {Name: "French", Articles: []string{"le", "la", "l'", "les"}},
	"it": {Name: "Italian", Articles: []string{"il", "lo", "la", "l'", "i", "gli", "le"}},
}

var learnerNames = map[string]string{
	"en": "English",
	"ja": "Japanese",
	"uk": "Ukrainian",
	"de": "German",
	"ru": "Russian",
	"zh": "Chinese",
	"ko": "Korean",
}

// ProfileFor returns the profile for an ISO 639-1 source language code.
func ProfileFor(code string) (Profile, bool) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(code))]
	return p, ok
}

// LanguageName returns a display name for an ISO 639-1 code, falling back to
// the code itself.
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if p, ok := profiles[code]; ok {
		return p.Name
	}
	if name, ok := learnerNames[code]; ok {
		return name
	}
	return code
}
