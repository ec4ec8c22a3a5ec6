// Package translate defines the machine translation backend interface and
// resolves user-facing language names ("Spanish") to the codes backends
// expect ("es").
package translate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// AutoDetect asks the backend to detect the source language.
const AutoDetect = "auto"

// Translator converts text between languages. Source may be AutoDetect;
// both source and target are backend language codes.
type Translator interface {
	// Name returns the backend identifier (e.g., "google", "libre").
	Name() string

	// Translate performs one translation call.
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// supported lists the languages offered by name. Codes outside this list are
// still accepted by ResolveLanguage if they parse as BCP 47.
var supported = []language.Tag{
	language.English, language.Spanish, language.French, language.Urdu,
	language.German, language.Italian, language.Portuguese, language.Dutch,
	language.Arabic, language.Hindi, language.Turkish, language.Russian,
	language.Japanese, language.Korean, language.Chinese, language.Persian,
	language.Bengali, language.Indonesian, language.Thai, language.Vietnamese,
	language.Greek, language.Polish, language.Swedish,
}

var byName = func() map[string]language.Tag {
	namer := display.English.Languages()
	m := make(map[string]language.Tag, len(supported))
	for _, tag := range supported {
		m[strings.ToLower(namer.Name(tag))] = tag
	}
	return m
}()

// ResolveLanguage maps an English language name or a BCP 47 code to the
// code sent to translation backends.
func ResolveLanguage(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty language")
	}
	if s == AutoDetect {
		return AutoDetect, nil
	}
	if tag, ok := byName[s]; ok {
		return tag.String(), nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	if _, conf := tag.Base(); conf == language.No {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return tag.String(), nil
}

// IsEnglish reports whether s names English, by name or by code.
func IsEnglish(s string) bool {
	code, err := ResolveLanguage(s)
	if err != nil || code == AutoDetect {
		return false
	}
	base, _ := language.Make(code).Base()
	return base.String() == "en"
}
