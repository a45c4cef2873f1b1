// Package langs maps user supplied language hints (BCP 47 codes, English names, native
// names) to the detected-language names the workshop backend filters on
package langs

import (
	"strings"

	perr "workshopdex/internal/platform/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Backend language names
const (
	English    = "English"
	Russian    = "Russian"
	Chinese    = "Chinese"
	Japanese   = "Japanese"
	Korean     = "Korean"
	Spanish    = "Spanish"
	Portuguese = "Portuguese"
	Unknown    = "Unknown"
)

type entry struct {
	name string
	tag  language.Tag
}

var supported = []entry{
	{English, language.English},
	{Russian, language.Russian},
	{Chinese, language.Chinese},
	{Japanese, language.Japanese},
	{Korean, language.Korean},
	{Spanish, language.Spanish},
	{Portuguese, language.Portuguese},
	{Unknown, language.Und},
}

var fold = cases.Fold()

// byName indexes every accepted spelling, folded: backend name, English display name and
// the language's own name for itself
var byName = func() map[string]string {
	m := make(map[string]string, len(supported)*3)
	en := display.English.Languages()
	for _, e := range supported {
		m[fold.String(e.name)] = e.name
		if e.tag == language.Und {
			continue
		}
		m[fold.String(en.Name(e.tag))] = e.name
		m[fold.String(display.Self.Name(e.tag))] = e.name
	}
	return m
}()

// Names returns the backend language names in a stable order
func Names() []string {
	out := make([]string, 0, len(supported))
	for _, e := range supported {
		out = append(out, e.name)
	}
	return out
}

// Canonicalize resolves s to a backend language name. Accepted forms include "English",
// "english", "en", "en-GB", "ja_JP", "Japanese" and "日本語". Unknown input is a Validation error
func Canonicalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "language must not be empty"), "language")
	}
	if name, ok := byName[fold.String(s)]; ok {
		return name, nil
	}
	if tag, err := language.Parse(strings.ReplaceAll(s, "_", "-")); err == nil {
		if base, conf := tag.Base(); conf == language.Exact {
			for _, e := range supported {
				if e.tag == language.Und {
					continue
				}
				if b, _ := e.tag.Base(); b == base {
					return e.name, nil
				}
			}
		}
	}
	return "", perr.WithField(
		perr.Newf(perr.ErrorCodeValidation, "language %q is not one of %s", s, strings.Join(Names(), ", ")),
		"language",
	)
}

// Tag returns the BCP 47 tag for a backend language name, language.Und when unknown
func Tag(name string) language.Tag {
	for _, e := range supported {
		if e.name == name {
			return e.tag
		}
	}
	return language.Und
}

// Display returns name as written in the language of in, e.g. Display(Japanese, language.German)
// is "Japanisch". Falls back to name
func Display(name string, in language.Tag) string {
	tag := Tag(name)
	if tag == language.Und {
		return name
	}
	if n := display.Languages(in).Name(tag); n != "" {
		return n
	}
	return name
}
