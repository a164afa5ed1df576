//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northstack/leadgen/test/integration/testutil"
)

func TestUpdateStatus_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("admin")
	id := env.SeedLead("new", "medium")

	resp := env.AuthPATCH("/api-admin/status", map[string]interface{}{
		"table": "leads", "id": id, "status": "contacted",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var status string
	require.NoError(t, env.Pool.QueryRow(context.Background(),
		`SELECT status FROM leads WHERE id = $1`, id).Scan(&status))
	assert.Equal(t, "contacted", status)
}

func TestUpdateStatus_PutAliasesPatch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("superadmin")
	id := env.SeedLead("new", "medium")

	resp := env.AuthPUT("/api-admin/status", map[string]interface{}{
		"table": "leads", "id": id, "status": "qualified",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("admin")

	resp := env.AuthPATCH("/api-admin/status", map[string]interface{}{
		"table": "contacts", "id": 999999, "status": "read",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_TableOutsideAllowList(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("admin")

	resp := env.AuthPATCH("/api-admin/status", map[string]interface{}{
		"table": "admin_users", "id": 1, "status": "new",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := testutil.DecodeEnvelope(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `"Invalid table name"`, string(body["message"]))
}

func TestUpdateStatus_InvalidStatusForTable(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("admin")
	id := env.SeedLead("new", "medium")

	// "replied" belongs to contacts, not leads.
	resp := env.AuthPATCH("/api-admin/status", map[string]interface{}{
		"table": "leads", "id": id, "status": "replied",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatus_MissingFields(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.AdminToken("admin")

	resp := env.AuthPATCH("/api-admin/status", map[string]interface{}{}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
