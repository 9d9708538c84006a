package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/scholaria/scholaria-backend/src/config"
	"github.com/scholaria/scholaria-backend/src/connections"
	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/realtime"
	"github.com/scholaria/scholaria-backend/src/routes"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	lib.DB = db
	lib.AutoMigrate()

	store := connections.NewGormStore(lib.DB)
	manager := connections.NewManager(store, zerolog.Nop())
	hub := realtime.NewHub(zerolog.Nop())
	controllers.Setup(manager, hub, &config.Config{UploadDir: t.TempDir()})

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.ConnectionRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func signup(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", fiber.Map{
		"full_name":   name,
		"email":       email,
		"password":    "hunter22",
		"institution": "Test University",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestConnectionFlow(t *testing.T) {
	app := setupTestApp(t)

	aliceToken := signup(t, app, "Alice Ahn", "alice@example.edu")
	bobToken := signup(t, app, "Bob Barnes", "bob@example.edu")
	carolToken := signup(t, app, "Carol Chen", "carol@example.edu")

	// Alice discovers Bob and Carol, no requests anywhere yet.
	resp, discover := doJSONList(t, app, "/api/v1/connections/discover", aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, discover, 2)
	for _, entry := range discover {
		assert.Equal(t, "none", entry["connectionStatus"])
	}

	// Alice sends Bob a request.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/connections/request/2", aliceToken, fiber.Map{
		"message": "Let's collaborate.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	request, ok := body["request"].(map[string]interface{})
	require.True(t, ok)
	requestID := int(request["_id"].(float64))
	assert.Equal(t, "pending", request["status"])

	// A second attempt is a duplicate, not a server error.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/connections/request/2", aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "A connection request already exists", body["message"])

	// So is the mirror-image request from Bob.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/connections/request/1", bobToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Self-requests are refused outright.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/connections/request/1", aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Both sides see the pending pair with the right direction.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/connections/status/2", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "outgoing", body["direction"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/connections/status/1", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "incoming", body["direction"])

	// Bob's pending inbox holds Alice's note.
	resp, inbox := doJSONList(t, app, "/api/v1/connections/requests", bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Let's collaborate.", inbox[0]["message"])

	// Carol cannot respond to a request that isn't hers.
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/accept/%d", requestID), carolToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Neither can Alice, the sender.
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/accept/%d", requestID), aliceToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Bob accepts.
	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/accept/%d", requestID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	accepted := body["request"].(map[string]interface{})
	assert.Equal(t, "accepted", accepted["status"])

	// Accepting again reports the request as already handled.
	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/accept/%d", requestID), bobToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This request has already been processed", body["message"])

	// Both connection lists show the other party.
	resp, aliceConns := doJSONList(t, app, "/api/v1/connections/", aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, aliceConns, 1)
	assert.Equal(t, "Bob Barnes", aliceConns[0]["peer"].(map[string]interface{})["full_name"])

	resp, bobConns := doJSONList(t, app, "/api/v1/connections/", bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, bobConns, 1)
	assert.Equal(t, "Alice Ahn", bobConns[0]["peer"].(map[string]interface{})["full_name"])

	// Bob's inbox is empty again.
	resp, inbox = doJSONList(t, app, "/api/v1/connections/requests", bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, inbox)

	// An unknown id is a 404, not a crash.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/connections/accept/999", bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRejectIsTerminal(t *testing.T) {
	app := setupTestApp(t)

	aliceToken := signup(t, app, "Alice Ahn", "alice@example.edu")
	bobToken := signup(t, app, "Bob Barnes", "bob@example.edu")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/connections/request/2", aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	requestID := int(body["request"].(map[string]interface{})["_id"].(float64))

	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/reject/%d", requestID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// No flip to accepted after the fact.
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/connections/accept/%d", requestID), bobToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// And no re-request for the pair: rejection is terminal.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/connections/request/2", aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/connections/status/2", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", body["status"])
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/connections/discover", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
