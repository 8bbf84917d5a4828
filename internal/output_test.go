package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOutput_PendingStatus(t *testing.T) {
	w := httptest.NewRecorder()
	out := NewOutput(w)

	out.SetStatus(StatusFileNotFound)
	out.SetHeader("Content-Type", "text/plain")

	if out.Written() {
		t.Fatal("Written() = true before any write")
	}

	if _, err := out.Write([]byte("gone")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}
	if out.Size() != 4 {
		t.Errorf("Size() = %d, want 4", out.Size())
	}

	out.SetStatus(StatusOK)
	if out.Status() != StatusFileNotFound {
		t.Errorf("Status() = %v after write, want 404", out.Status())
	}
}

func TestOutput_WriteHeader_OnlyOnce(t *testing.T) {
	w := httptest.NewRecorder()
	out := NewOutput(w)

	out.WriteHeader(http.StatusOK)
	out.WriteHeader(http.StatusNotFound)

	if out.Status() != StatusOK {
		t.Errorf("Status() = %v, want %v", out.Status(), StatusOK)
	}
	if w.Code != http.StatusOK {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOutput_Finish(t *testing.T) {
	w := httptest.NewRecorder()
	out := NewOutput(w)

	out.SetStatus(StatusInternalServerError)
	out.Finish()
	out.Finish()

	if w.Code != http.StatusInternalServerError {
		t.Errorf("underlying status = %d, want 500", w.Code)
	}
	if !out.Written() {
		t.Error("Written() = false after Finish")
	}
}

func TestOutput_OnBeforeWrite(t *testing.T) {
	w := httptest.NewRecorder()
	out := NewOutput(w)

	var order []string
	out.OnBeforeWrite(func() {
		order = append(order, "first")
		out.Header().Set("Set-Cookie", "sid=1")
	})
	out.OnBeforeWrite(func() { order = append(order, "second") })

	_, _ = out.Write([]byte("a"))
	_, _ = out.Write([]byte("b"))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("hooks ran as %v, want [first second]", order)
	}
	if w.Header().Get("Set-Cookie") != "sid=1" {
		t.Error("header set in hook was not sent")
	}
	if w.Body.String() != "ab" {
		t.Errorf("body = %q, want ab", w.Body.String())
	}
}
