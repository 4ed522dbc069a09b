package solid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	"hypey-backend/pkg/auth"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/observability"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStore(srv.Client(), observability.NewNopMetrics(), zap.NewNop()), srv
}

func TestStoreFetch(t *testing.T) {
	t.Run("parses the document and forwards the bearer token", func(t *testing.T) {
		var gotAuth string
		store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", contentType)
			_, _ = w.Write([]byte(`[{"@id": "#app", "` + document.PredImageUploadContainer + `": [{"@id": "https://pod.example/images/"}]}]`))
		})

		ref, err := valueobjects.NewRefFromString(srv.URL + "/app.jsonld#app")
		require.NoError(t, err)

		ctx := auth.WithAccessToken(context.Background(), "tok-123")
		doc, err := store.Fetch(ctx, ref)
		require.NoError(t, err)

		assert.Equal(t, "Bearer tok-123", gotAuth)
		thing, ok := doc.Thing(ref)
		require.True(t, ok)
		container, _ := thing.GetURL(document.PredImageUploadContainer)
		assert.Equal(t, "https://pod.example/images/", container)
	})

	t.Run("404 is NotFound", func(t *testing.T) {
		store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		ref, err := valueobjects.NewRefFromString(srv.URL + "/app.jsonld#app")
		require.NoError(t, err)

		_, err = store.Fetch(context.Background(), ref)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("server error is a store error", func(t *testing.T) {
		store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		ref, err := valueobjects.NewRefFromString(srv.URL + "/app.jsonld#app")
		require.NoError(t, err)

		_, err = store.Fetch(context.Background(), ref)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeStore))
	})

	t.Run("local token is rejected before any request", func(t *testing.T) {
		store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		_, err := store.Fetch(context.Background(), valueobjects.NewLocalRef())
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})
}

func TestStoreSave(t *testing.T) {
	t.Run("PUTs the document and promotes local tokens", func(t *testing.T) {
		var gotMethod, gotContentType string
		store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusCreated)
		})

		docURL := srv.URL + "/app.jsonld"
		ref, err := valueobjects.NewRefFromString("#e1")
		require.NoError(t, err)

		doc := document.NewDocument(docURL)
		thing := document.NewThing(ref)
		thing.SetValue(document.PredImageURL, document.URLValue("https://cdn.example/cat.png"))
		doc.SetThing(thing)

		saved, err := store.Save(context.Background(), doc)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, contentType, gotContentType)

		savedThing, ok := saved.Thing(ref)
		require.True(t, ok)
		assert.Equal(t, docURL+"#e1", savedThing.Ref().String())
		// The caller's document is untouched
		assert.True(t, thing.Ref().IsLocal())
	})

	t.Run("rejected write is a save failure", func(t *testing.T) {
		store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		doc := document.NewDocument(srv.URL + "/app.jsonld")
		_, err := store.Save(context.Background(), doc)
		assert.True(t, pkgerrors.IsSaveFailed(err))
	})

	t.Run("document without a URL is rejected", func(t *testing.T) {
		store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		_, err := store.Save(context.Background(), document.NewDocument(""))
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})
}

func TestStoreEnsureContainer(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantOK bool
	}{
		{"created", http.StatusCreated, true},
		{"already exists via conflict", http.StatusConflict, true},
		{"already exists via method not allowed", http.StatusMethodNotAllowed, true},
		{"forbidden", http.StatusForbidden, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			err := store.EnsureContainer(context.Background(), srv.URL+"/images/")
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
