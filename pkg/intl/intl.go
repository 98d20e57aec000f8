package intl

import (
	"golang.org/x/text/language"
)

// Language is a locale the console ships translations for.
type Language struct {
	Code  string
	Label string
	Tag   language.Tag
}

var languages = []Language{
	{Code: "en", Label: "English", Tag: language.English},
	{Code: "zh", Label: "中文", Tag: language.Chinese},
}

// Languages returns the shipped languages whose code is listed in enabled, in
// shipping order. An empty list enables every language.
func Languages(enabled []string) []Language {
	if len(enabled) == 0 {
		return languages
	}
	out := make([]Language, 0, len(enabled))
	for _, lang := range languages {
		for _, code := range enabled {
			if lang.Code == code {
				out = append(out, lang)
				break
			}
		}
	}
	return out
}

// Tags is Languages reduced to the tags a language.Matcher needs.
func Tags(enabled []string) []language.Tag {
	langs := Languages(enabled)
	tags := make([]language.Tag, len(langs))
	for i, lang := range langs {
		tags[i] = lang.Tag
	}
	return tags
}

// Match picks the best shipped language for the candidates, falling back to fallback
// when nothing is enabled and to the first enabled language when nothing matches.
func Match(fallback language.Tag, supported, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return fallback
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{fallback}
	}
	_, idx, _ := language.NewMatcher(supported).Match(candidates...)
	return supported[idx]
}
