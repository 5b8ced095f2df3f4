package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/movievault/movievault/internal/mocks"
)

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		movieRepo: &mocks.MockMovieRepo{},
		blobStore: &mocks.MockBlobStore{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()

	return w, r
}

type posterFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, url string, fields map[string]string, poster *posterFile) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	if poster != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="poster"; filename=%q`, poster.name))
		h.Set("Content-Type", poster.contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := part.Write(poster.data); err != nil {
			t.Fatal(err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	return w, r
}

// withURLParam injects a chi route parameter so handlers can be exercised
// without going through the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func ptr[T any](v T) *T {
	return &v
}
