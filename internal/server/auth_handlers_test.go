package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MayankPrasher/draftly-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(t *testing.T, app *fiber.App, payload map[string]string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func loginRequest(t *testing.T, app *fiber.App, email, password string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func setupAuthApp(s *Server) *fiber.App {
	app := newTestApp()
	app.Post("/api/v1/auth/register", s.Register)
	app.Post("/api/v1/auth/login", s.Login)
	return app
}

func TestRegisterSuccess(t *testing.T) {
	s, _ := newTestServer(t)
	app := setupAuthApp(s)

	resp := registerRequest(t, app, map[string]string{
		"username": "alice", "email": "A@X.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	// Email is stored lowercase and the hash never leaves the server.
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.Equal(t, models.DefaultProfilePicture, user["profilePicture"])
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestServer(t)
	app := setupAuthApp(s)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing username", map[string]string{"email": "a@x.com", "password": "secret1"}},
		{"missing email", map[string]string{"username": "alice", "password": "secret1"}},
		{"missing password", map[string]string{"username": "alice", "email": "a@x.com"}},
		{"short username", map[string]string{"username": "a", "email": "a@x.com", "password": "secret1"}},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "secret1"}},
		{"short password", map[string]string{"username": "alice", "email": "a@x.com", "password": "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := registerRequest(t, app, tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	s, db := newTestServer(t)
	app := setupAuthApp(s)

	resp := registerRequest(t, app, map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same email, case-insensitively.
	resp = registerRequest(t, app, map[string]string{
		"username": "alice2", "email": "A@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Same username with a fresh email.
	resp = registerRequest(t, app, map[string]string{
		"username": "alice", "email": "b@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	app := setupAuthApp(s)

	resp := registerRequest(t, app, map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeBody(t, resp)
	registeredUser := registered["user"].(map[string]any)

	resp = loginRequest(t, app, "a@x.com", "secret1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	tok, ok := body["token"].(string)
	require.True(t, ok)

	userID, err := s.tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, registeredUser["id"], float64(userID))
}

func TestLoginGenericFailureMessage(t *testing.T) {
	s, db := newTestServer(t)
	app := setupAuthApp(s)
	createTestUser(t, db, "alice", "a@x.com", "secret1")

	// Unknown email and wrong password are indistinguishable.
	for _, attempt := range []struct{ email, password string }{
		{"nobody@x.com", "secret1"},
		{"a@x.com", "wrong-password"},
	} {
		resp := loginRequest(t, app, attempt.email, attempt.password)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid email or password.", body["msg"])
	}
}
