package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finnadmin/internal/session"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(srv.URL, session.StaticToken("tok-menu"),
		WithHTTPClient(srv.Client()),
		WithCachePath(filepath.Join(t.TempDir(), "finnbourse-menu.json")))
}

func TestGetFetchesAndCaches(t *testing.T) {
	var gotPath, gotAuth string
	calls := 0
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[{"id":"agence","label":"Agences","route":"/agence"}]}`))
	})

	m := s.Get(context.Background())
	require.Equal(t, "/menu/list", gotPath)
	require.Equal(t, "Bearer tok-menu", gotAuth)
	require.Len(t, m.Items, 1)
	require.Equal(t, "Agences", m.Items[0].Label)

	// Second call is served from memory.
	s.Get(context.Background())
	require.Equal(t, 1, calls)

	// And the cache file was written for the next session.
	data, err := os.ReadFile(s.cachePath)
	require.NoError(t, err)
	require.Contains(t, string(data), "Agences")
}

func TestGetPrefersCacheFileOverNetwork(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("network must not be hit when the cache file exists")
	})
	require.NoError(t, os.WriteFile(s.cachePath,
		[]byte(`{"items":[{"id":"cached","label":"Cached"}]}`), 0o644))

	m := s.Get(context.Background())
	require.Len(t, m.Items, 1)
	require.Equal(t, "cached", m.Items[0].ID)
}

func TestServerErrorFallsBack(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	m := s.Get(context.Background())
	require.Equal(t, Fallback(), m)
}

func TestMalformedPayloadFallsBack(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": "not a list"`))
	})
	m := s.Get(context.Background())
	require.Equal(t, Fallback(), m)
}

func TestEmptyPayloadFallsBack(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})
	m := s.Get(context.Background())
	require.Equal(t, Fallback(), m)
}

func TestFallbackIsNotCached(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	s.Get(context.Background())
	_, err := os.ReadFile(s.cachePath)
	require.True(t, os.IsNotExist(err), "fallback must not be written to the cache")
}

func TestCanceledContextFallsBack(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"items":[{"id":"x","label":"X"}]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := s.Get(ctx)
	require.Equal(t, Fallback(), m)
}

func TestFallbackCoversEveryResource(t *testing.T) {
	routes := map[string]bool{}
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, it := range items {
			if it.Route != "" {
				routes[it.Route] = true
			}
			walk(it.Children)
		}
	}
	walk(Fallback().Items)

	for _, want := range []string{"/agence", "/tcc", "/client", "/iob", "/financial-institution", "/issuer"} {
		require.Truef(t, routes[want], "fallback menu is missing %s", want)
	}
}
