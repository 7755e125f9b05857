package handlers

import (
	"net/http"
	"testing"

	"eduportal_backend/models"

	"github.com/stretchr/testify/assert"
)

func TestSetupAdminIsIdempotent(t *testing.T) {
	r, mem := setup(t)

	rec := doRequest(t, r, http.MethodPost, "/setup-admin", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Username string `json:"username"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Admin user created successfully", resp.Message)
	assert.Equal(t, SetupAdminUsername, resp.Username)

	rec = doRequest(t, r, http.MethodPost, "/setup-admin", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Admin user already exists", resp.Message)

	// No duplicate account after the second call.
	users, err := mem.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, SetupAdminUsername, users[0].Username)
	assert.Equal(t, []string{models.RoleAdmin}, users[0].Roles)
}

func TestSetupAdminCanLogIn(t *testing.T) {
	r, _ := setup(t)

	rec := doRequest(t, r, http.MethodPost, "/setup-admin", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodPost, "/login", "",
		models.LoginRequest{Username: SetupAdminUsername, Password: SetupAdminPassword})
	assert.Equal(t, http.StatusOK, rec.Code)

	var tokens map[string]string
	decodeBody(t, rec, &tokens)
	assert.NotEmpty(t, tokens["access_token"])
}
