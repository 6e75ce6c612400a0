// internal/roster/handler_test.go
package roster

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlycrimson/bot-website-api/internal/db"
)

func setupTestHandler(t *testing.T) (*Handler, chi.Router) {
	t.Helper()
	path := t.TempDir() + "/test.db"
	database, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	handler := NewHandler(NewStore(database))

	r := chi.NewRouter()
	r.Get("/", handler.HandleRoot)
	r.Get("/leaderboard", handler.HandleLeaderboard)
	r.Get("/hr", handler.HandleListHR)
	r.Get("/lr", handler.HandleListLR)
	r.Post("/hr", handler.HandleCreateHR)
	r.Post("/lr", handler.HandleCreateLR)
	r.Post("/users", handler.HandleCreateUser)
	r.Put("/hr/{id}", handler.HandleUpdateHR)
	r.Put("/lr/{id}", handler.HandleUpdateLR)
	r.Put("/users/{id}", handler.HandleUpdateUser)
	r.Delete("/hr/{id}", handler.HandleDeleteHR)
	r.Delete("/lr/{id}", handler.HandleDeleteLR)
	r.Delete("/users/{id}", handler.HandleDeleteUser)

	return handler, r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleRoot(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "GET", "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bot API is running", resp["message"])
}

func TestCreateRequiresUsername(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/hr", `{"tryouts": 3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "missing_field", resp["error"])
	assert.Contains(t, resp["message"], "username")
}

func TestCreateDropsUnknownColumns(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/users", `{"username": "nelly", "xp": 40, "role": "owner"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var row map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "nelly", row["username"])
	assert.EqualValues(t, 40, row["xp"])
	_, hasRole := row["role"]
	assert.False(t, hasRole, "unknown column should be dropped, not stored")
}

func TestCreateInvalidJSON(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/lr", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaderboardEndpoint(t *testing.T) {
	_, r := setupTestHandler(t)

	for _, body := range []string{
		`{"username": "first", "user_id": "1", "xp": 300}`,
		`{"username": "second", "user_id": "2", "xp": 200}`,
		`{"username": "third", "user_id": "3", "xp": 100}`,
	} {
		w := doJSON(t, r, "POST", "/users", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, r, "GET", "/leaderboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0]["username"])
	assert.EqualValues(t, 300, rows[0]["xp"])
}

func TestListEndpointsReturnEmptyArray(t *testing.T) {
	_, r := setupTestHandler(t)

	for _, path := range []string{"/hr", "/lr", "/leaderboard"} {
		w := doJSON(t, r, "GET", path, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String(), "GET %s", path)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/hr", `{"username": "nelly"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = doJSON(t, r, "PUT", "/hr/"+id, `{"tryouts": 7, "bogus": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.EqualValues(t, 7, updated["tryouts"])
}

func TestUpdateNoValidFields(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/lr", `{"username": "nelly"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = doJSON(t, r, "PUT", "/lr/"+id, `{"bogus": true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no_valid_fields", resp["error"])
}

func TestUpdateMissingRecord(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "PUT", "/users/nope", `{"xp": 5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	_, r := setupTestHandler(t)

	w := doJSON(t, r, "POST", "/users", `{"username": "nelly"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = doJSON(t, r, "DELETE", "/users/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	// Idempotent: deleting the same id again still succeeds.
	w = doJSON(t, r, "DELETE", "/users/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
