package i18n

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/esprit/pkg/db"
)

const (
	sqlLanguageByID = `SELECT languageid, identifier, parentid FROM languages WHERE languageid = $1`

	sqlLanguageByIdentifier = `SELECT languageid, identifier, parentid FROM languages WHERE identifier = $1`

	sqlAllLanguages = `SELECT languageid, identifier, parentid FROM languages ORDER BY languageid`

	sqlTranslation = `SELECT translation FROM translations
		WHERE languageid = $1 AND translationidentifier = $2`

	sqlIdentifierExists = `SELECT EXISTS (SELECT 1 FROM translations WHERE translationidentifier = $1)`

	sqlUpsertTranslation = `INSERT INTO translations (languageid, translationidentifier, translation)
		VALUES ($1, $2, $3)
		ON CONFLICT (languageid, translationidentifier) DO UPDATE SET translation = EXCLUDED.translation`
)

// PostgresStore reads languages and translations from the languages and
// translations tables of a database handle.
type PostgresStore struct {
	ref db.Reference
}

// NewPostgresStore creates a store over ref. The handle connects on the
// first query.
func NewPostgresStore(ref db.Reference) *PostgresStore {
	return &PostgresStore{ref: ref}
}

func (s *PostgresStore) LanguageByID(ctx context.Context, id int64) (*Language, error) {
	return s.language(ctx, sqlLanguageByID, id, fmt.Sprint(id))
}

func (s *PostgresStore) LanguageByIdentifier(ctx context.Context, identifier string) (*Language, error) {
	return s.language(ctx, sqlLanguageByIdentifier, identifier, identifier)
}

func (s *PostgresStore) language(ctx context.Context, query string, arg any, name string) (*Language, error) {
	h, err := s.ref.Deref(ctx)
	if err != nil {
		return nil, err
	}
	var l Language
	err = h.QueryRow(ctx, query, arg).Scan(&l.ID, &l.Identifier, &l.ParentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNonexistentLanguage, name)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *PostgresStore) Languages(ctx context.Context) ([]*Language, error) {
	h, err := s.ref.Deref(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := h.Query(ctx, sqlAllLanguages)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Language, error) {
		var l Language
		err := row.Scan(&l.ID, &l.Identifier, &l.ParentID)
		return &l, err
	})
}

func (s *PostgresStore) Translation(ctx context.Context, languageID int64, identifier string) (string, bool, error) {
	h, err := s.ref.Deref(ctx)
	if err != nil {
		return "", false, err
	}
	var text string
	err = h.QueryRow(ctx, sqlTranslation, languageID, identifier).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (s *PostgresStore) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	h, err := s.ref.Deref(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = h.QueryRow(ctx, sqlIdentifierExists, identifier).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) SetTranslation(ctx context.Context, languageID int64, identifier, text string) error {
	h, err := s.ref.Deref(ctx)
	if err != nil {
		return err
	}
	_, err = h.Exec(ctx, sqlUpsertTranslation, languageID, identifier, text)
	return err
}

var _ WritableStore = (*PostgresStore)(nil)
