package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
)

func TestCoreCommands(t *testing.T) {
	t.Parallel()

	src := internal.CoreCommands().Bind(&internal.Services{})
	for _, name := range []string{internal.IndexName, internal.DefaultFallbackName} {
		assert.True(t, src.IsDefined(name), name)
	}

	fallback, err := src.Instantiate(internal.DefaultFallbackName)
	require.NoError(t, err)

	resp := internal.NewResponse(requestFor(t, "/anything"))
	require.NoError(t, fallback.Execute(context.Background(), resp.Request(), resp))
	assert.Equal(t, true, resp.Get(internal.NotFoundKey))
}

func TestDefaultView(t *testing.T) {
	t.Parallel()

	templates, err := internal.NewTemplateSet(templatesFS(map[string]string{
		"Default.html": `<h1>{{.title}}</h1>`,
	}))
	require.NoError(t, err)
	view := internal.NewDefaultView(templates)

	t.Run("renders with 200", func(t *testing.T) {
		t.Parallel()
		resp := internal.NewResponse(requestFor(t, "/"))
		resp.Set("title", "<Home>")

		rec := httptest.NewRecorder()
		out := internal.NewOutput(rec)
		require.NoError(t, view.Display(context.Background(), out, resp))
		out.Finish()

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<h1>&lt;Home&gt;</h1>", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("not found responses use 404", func(t *testing.T) {
		t.Parallel()
		for _, mark := range []func(*internal.Response){
			func(r *internal.Response) { r.SetNotFound(true) },
			func(r *internal.Response) { r.Set(internal.NotFoundKey, true) },
		} {
			resp := internal.NewResponse(requestFor(t, "/gone"))
			mark(resp)

			rec := httptest.NewRecorder()
			out := internal.NewOutput(rec)
			require.NoError(t, view.Display(context.Background(), out, resp))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()
		empty, err := internal.NewTemplateSet(nil)
		require.NoError(t, err)

		resp := internal.NewResponse(requestFor(t, "/"))
		err = internal.NewDefaultView(empty).Display(context.Background(), internal.NewOutput(httptest.NewRecorder()), resp)
		assert.ErrorIs(t, err, internal.ErrTemplateNotFound)
	})
}

func TestFallbackView(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	resp := internal.NewResponse(requestFor(t, "/"))
	require.NoError(t, internal.FallbackView{}.Display(context.Background(), internal.NewOutput(rec), resp))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestCoreViewsJSON(t *testing.T) {
	t.Parallel()

	src := internal.CoreViews().Bind(&internal.Services{})

	tests := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{name: internal.ActionRecordName, want: `{"status":"ok"}`},
		{name: internal.JsErrorRecordName, want: `{"type":"ok"}`},
		{
			name:   internal.JsErrorRecordName,
			values: map[string]any{"errorMsg": "missing path"},
			want:   `{"type":"error","msg":"missing path"}`,
		},
	}

	for _, tt := range tests {
		view, err := src.Instantiate(tt.name)
		require.NoError(t, err)

		resp := internal.NewResponse(requestFor(t, "/"))
		for k, v := range tt.values {
			resp.Set(k, v)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, view.Display(context.Background(), internal.NewOutput(rec), resp))
		assert.JSONEq(t, tt.want, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}
