package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header parsed per request.
const maxAcceptLanguageLength = 4096

// Negotiate picks the language from available that best matches an
// Accept-Language header. The first entry of available is the fallback;
// nil is returned only when available is empty. Identifiers that are not
// valid BCP 47 tags never match.
func Negotiate(header string, available []*Language) *Language {
	if len(available) == 0 {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return available[0]
	}

	// The matcher's first tag is its default, so available[0] stays the
	// fallback even when its identifier does not parse.
	tags := make([]language.Tag, 0, len(available))
	index := make([]int, 0, len(available))
	for i, l := range available {
		tag, err := language.Parse(l.Identifier)
		if err != nil {
			if i == 0 {
				tags = append(tags, language.Und)
				index = append(index, 0)
			}
			continue
		}
		tags = append(tags, tag)
		index = append(index, i)
	}

	_, pos, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No {
		return available[0]
	}
	return available[index[pos]]
}
