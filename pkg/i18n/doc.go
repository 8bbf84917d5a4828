// Package i18n stores languages and their translations and resolves text
// along a language's parent chain.
//
// Languages form a tree: "en-GB" may name "en" as its parent, so any
// identifier "en-GB" does not translate itself falls back to the "en" text.
//
//	store := i18n.NewPostgresStore(dbm.Ref(db.DefaultHandle))
//	langs := i18n.NewLanguageSource(store, c.AccessNamespace("i18n"))
//	tm := i18n.NewTranslationManager(store, langs, c.AccessNamespace("i18n"))
//
//	t := i18n.NewTranslator(tm, "en-GB", log)
//	t.Translate(ctx, "greeting")
//
// [LanguageSource] keeps one *Language per id and caches rows under
// "lang_<id>" and "lang_ident_<identifier>". [TranslationManager] caches
// each resolved text per language and identifier.
//
// [Translator] never fails: a missing translation is logged and rendered as
// the empty string.
//
// # Stores
//
// [PostgresStore] reads the languages and translations tables created by
// [Migrations]. [MemoryStore] keeps everything in process and loads YAML
// documents, which suits tests and small sites.
//
// # Negotiation
//
// [Negotiate] matches an Accept-Language header against the stored
// languages with golang.org/x/text/language.
package i18n
