package internal_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
	"github.com/dmitrymomot/esprit/pkg/i18n"
)

func newLanguage(id int64, identifier string, parent *int64) *i18n.Language {
	return &i18n.Language{ID: id, Identifier: identifier, ParentID: parent}
}

func requestFor(t *testing.T, uri string) *internal.Request {
	t.Helper()
	u, err := internal.ParseURL(uri, "example.com")
	require.NoError(t, err)
	return internal.NewRequestBuilder().URL(u).GetData(url.Values{}).Build()
}

// namedCommand records nothing and is told apart by its name.
func namedCommand(name string) internal.Command {
	return internal.NewCommand(name, func(context.Context, *internal.Request, *internal.Response) error {
		return nil
	})
}

func commandSource(names ...string) internal.CommandSource {
	reg := internal.NewCommandRegistry()
	for _, n := range names {
		reg.Add(n, namedCommand(n))
	}
	return reg.Bind(&internal.Services{})
}

type namedView string

func (v namedView) Display(_ context.Context, out *internal.Output, _ *internal.Response) error {
	_, err := out.Write([]byte(v))
	return err
}

func viewSource(names ...string) internal.ViewSource {
	reg := internal.NewViewRegistry()
	for _, n := range names {
		reg.Add(n, namedView(n))
	}
	return reg.Bind(&internal.Services{})
}

func templatesFS(files map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

var _ http.ResponseWriter = (*internal.Output)(nil)
