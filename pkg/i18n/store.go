package i18n

import "context"

// WritableStore is a Store that also accepts new translations. It backs the
// translation tool.
type WritableStore interface {
	Store

	// IdentifierExists reports whether any language has identifier.
	IdentifierExists(ctx context.Context, identifier string) (bool, error)

	// SetTranslation inserts or replaces the text of identifier for one
	// language.
	SetTranslation(ctx context.Context, languageID int64, identifier, text string) error
}
