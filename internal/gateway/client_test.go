package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finnadmin/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Cleanup(srv.Client().CloseIdleConnections)
	return New(srv.URL, session.StaticToken("test-token"), WithHTTPClient(srv.Client()))
}

func TestCreatePostsToCollectionWithBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ag-1"})
	})

	id, err := client.Agence().CreateOrUpdate(context.Background(), map[string]any{"code": "A1"}, "")
	require.NoError(t, err)

	assert.Equal(t, "ag-1", id)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/agence", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "A1", gotBody["code"])
}

func TestUpdatePutsToElementAndKeepsID(t *testing.T) {
	var gotPath, gotMethod string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK) // backend omits the id on update
	})

	id, err := client.TCC().CreateOrUpdate(context.Background(), map[string]any{"code": "T1"}, "tcc-7")
	require.NoError(t, err)

	assert.Equal(t, "tcc-7", id)
	assert.Equal(t, "/tcc/tcc-7", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
}

func TestCreateUserPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
	})

	id, err := client.Agence().CreateUser(context.Background(), "ag-1", UserPayload{
		FullName: "Jane Ops",
		Email:    "jane@x.com",
		Roles:    []string{"agence_viewer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	assert.Equal(t, "/agence/ag-1/users", gotPath)
}

func TestUpdateUserRolePath(t *testing.T) {
	var gotPath string
	var gotBody RolePayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.Agence().UpdateUserRole(context.Background(), "ag-1", "u1", []string{"agence_admin"})
	require.NoError(t, err)
	assert.Equal(t, "/agence/ag-1/users/u1/role", gotPath)
	assert.Equal(t, []string{"agence_admin"}, gotBody.Roles)
}

func TestTokenFailureShortCircuitsBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	client.tokens = session.StaticToken("")

	_, err := client.Agence().FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNoToken)
	assert.False(t, called, "no request must be issued without a token")
}

func TestStructuredCodeWinsOverHeuristic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "validation_failed",
			"message": "email already in use", // heuristic would say duplicate
		})
	})

	_, err := client.Agence().CreateUser(context.Background(), "ag-1", UserPayload{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation), "structured code must win: %v", err)
}

func TestHeuristicFallbackClassifiesDuplicateEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already in use"})
	})

	_, err := client.Agence().CreateUser(context.Background(), "ag-1", UserPayload{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDuplicateEmail), "expected duplicate-email kind, got %v", err)
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, KindAuth},
		{"forbidden", http.StatusForbidden, `{}`, KindAuth},
		{"not found", http.StatusNotFound, `{"message":"no such agency"}`, KindNotFound},
		{"conflict", http.StatusConflict, `{}`, KindDuplicateEmail},
		{"plain validation", http.StatusUnprocessableEntity, `{"message":"code is required"}`, KindValidation},
		{"server error", http.StatusInternalServerError, `boom`, KindTransient},
		{"structured not found", http.StatusGone, `{"code":"not_found"}`, KindNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := classify(tc.status, []byte(tc.body))
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.Status)
		})
	}
}

func TestTransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	client := New(url, session.StaticToken("tok"))
	_, err := client.Agence().FetchOne(context.Background(), "ag-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransient), "expected transient kind, got %v", err)
}
