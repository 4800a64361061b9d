package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsIDAndUsername(t *testing.T) {
	r := setupRouter(t, testSecret)

	w := doJSON(t, r, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "alice",
		"password": "password123",
		"email":    "a@x.com",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotZero(t, body["id"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "")

	w := doJSON(t, r, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "alice",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username_exists", errorCode(t, w))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "shared@x.com")

	w := doJSON(t, r, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "bob",
		"password": "password123",
		"email":    "shared@x.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email_exists", errorCode(t, w))
}

func TestRegisterShortPassword(t *testing.T) {
	r := setupRouter(t, testSecret)

	w := doJSON(t, r, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "alice",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginReturnsVerifiableTokens(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "")
	access, refresh := login(t, r, "alice", "password123")
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	// The access token identifies the same user.
	w := doJSON(t, r, http.MethodGet, "/users/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "")

	wrongPassword := doJSON(t, r, http.MethodPost, "/users/login", map[string]interface{}{
		"username": "alice",
		"password": "password124",
	}, "")
	noSuchUser := doJSON(t, r, http.MethodPost, "/users/login", map[string]interface{}{
		"username": "nobody",
		"password": "password123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, noSuchUser.Code)

	// Nothing in the responses distinguishes the two causes.
	assert.Equal(t, wrongPassword.Body.String(), noSuchUser.Body.String())
}

func TestRefreshIssuesWorkingAccessToken(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "")
	_, refresh := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/users/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	access := decodeBody(t, w)["access_token"].(string)

	me := doJSON(t, r, http.MethodGet, "/users/me", nil, access)
	require.Equal(t, http.StatusOK, me.Code)
	user := decodeBody(t, me)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
}

func TestRefreshMissingToken(t *testing.T) {
	r := setupRouter(t, testSecret)

	w := doJSON(t, r, http.MethodPost, "/users/refresh", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshRejectsTamperedToken(t *testing.T) {
	r := setupRouter(t, testSecret)

	registerUser(t, r, "alice", "password123", "")
	_, refresh := login(t, r, "alice", "password123")

	tampered := refresh[:len(refresh)-2] + "xx"

	w := doJSON(t, r, http.MethodPost, "/users/refresh", map[string]interface{}{
		"refresh_token": tampered,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", errorCode(t, w))
}

func TestMeRequiresToken(t *testing.T) {
	r := setupRouter(t, testSecret)

	w := doJSON(t, r, http.MethodGet, "/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
