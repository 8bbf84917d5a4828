package i18n

import "errors"

var (
	// ErrNonexistentLanguage is returned for language ids or identifiers
	// that are not stored.
	ErrNonexistentLanguage = errors.New("i18n: nonexistent language")

	// ErrInvalidTranslationIdentifier is returned when neither a language
	// nor any of its ancestors has a translation for an identifier.
	ErrInvalidTranslationIdentifier = errors.New("i18n: invalid translation identifier")

	ErrLanguageCycle = errors.New("i18n: language parent chain has a cycle")
	ErrEmptyLanguage = errors.New("i18n: language cannot be empty")
	ErrInvalidFile   = errors.New("i18n: invalid translation file")
)
