package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialInstitutionFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"nested object", `{"id":"ag-1","financialInstitution":{"id":"fi-9"}}`, "fi-9"},
		{"flat camel", `{"id":"ag-1","financialInstitutionId":"fi-2"}`, "fi-2"},
		{"nested wins over flat", `{"financialInstitution":{"id":"fi-9"},"financialInstitutionId":"fi-2"}`, "fi-9"},
		{"legacy snake", `{"id":"ag-1","financial_institution_id":"fi-3"}`, "fi-3"},
		{"neither populated", `{"id":"ag-1"}`, ""},
		{"nested without id falls through", `{"financialInstitution":{},"financialInstitutionId":"fi-4"}`, "fi-4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e WireEntity
			require.NoError(t, json.Unmarshal([]byte(tc.body), &e))
			assert.Equal(t, tc.want, e.FinancialInstitutionRef())
		})
	}
}

func TestRoleListScalarAndArray(t *testing.T) {
	var scalar WireUser
	require.NoError(t, json.Unmarshal([]byte(`{"role":"agence_client_manager"}`), &scalar))
	assert.Equal(t, []string{"agence_client_manager"}, scalar.MergedRoles())

	var array WireUser
	require.NoError(t, json.Unmarshal([]byte(`{"role":["a","b"]}`), &array))
	assert.Equal(t, []string{"a", "b"}, array.MergedRoles())

	var plural WireUser
	require.NoError(t, json.Unmarshal([]byte(`{"role":"old","roles":["new1","new2"]}`), &plural))
	assert.Equal(t, []string{"new1", "new2"}, plural.MergedRoles(), "plural field wins when both present")

	var none WireUser
	require.NoError(t, json.Unmarshal([]byte(`{"role":null}`), &none))
	assert.Empty(t, none.MergedRoles())
}

func TestRoleListRejectsMalformedEntries(t *testing.T) {
	var u WireUser
	err := json.Unmarshal([]byte(`{"role":[1,2]}`), &u)
	assert.Error(t, err, "non-string role entries must surface a decode error")
}

func TestUserPayloadOmitsEmptyPassword(t *testing.T) {
	data, err := json.Marshal(UserPayload{FullName: "Jane", Email: "j@x.com", Roles: []string{"r"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}
