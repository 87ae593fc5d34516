package enums

import "fmt"

// Language is a supported interface language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTelugu  Language = "te"
)

// DefaultLanguage is applied to new accounts that do not pick one.
const DefaultLanguage = LanguageHindi

var validLanguages = []Language{
	LanguageEnglish,
	LanguageHindi,
	LanguageTelugu,
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// IsValid reports whether the value is a known Language.
func (l Language) IsValid() bool {
	for _, candidate := range validLanguages {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLanguage converts raw input into a Language.
func ParseLanguage(value string) (Language, error) {
	for _, candidate := range validLanguages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid language %q", value)
}
