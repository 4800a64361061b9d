package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/config"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/router"
)

const testSecret = "test-secret"

// setupRouter wires a throwaway sqlite database and a full router.
// secret == "" exercises auth-disabled mode.
func setupRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, db.ConnectDatabase("sqlite", path))
	require.NoError(t, db.MigrateDatabase())

	cfg := config.Config{
		Port:       "0",
		DBBackend:  "sqlite",
		DBPath:     path,
		JWTSecret:  secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 43200 * time.Minute,
	}

	return router.New(cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected an error body, got %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func registerUser(t *testing.T, r *gin.Engine, username, password, email string) uint {
	t.Helper()

	payload := map[string]interface{}{"username": username, "password": password}

	if email != "" {
		payload["email"] = email
	}

	w := doJSON(t, r, http.MethodPost, "/users/register", payload, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func login(t *testing.T, r *gin.Engine, username, password string) (access, refresh string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/users/login", map[string]interface{}{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return body["access_token"].(string), body["refresh_token"].(string)
}

// seedProject inserts a project the way the service expects them to exist:
// created out-of-band with both the owner_id column and an owner role row.
func seedProject(t *testing.T, name string, ownerID uint) uint {
	t.Helper()

	project := models.Project{Name: name, OwnerID: ownerID}
	require.NoError(t, db.DB.Create(&project).Error)

	membership := models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    ownerID,
		Role:      models.RoleOwner,
	}
	require.NoError(t, db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error)

	return project.ID
}

// createBareObject creates an object with no project through the API and
// returns its id.
func createBareObject(t *testing.T, r *gin.Engine, name string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/objects", map[string]interface{}{"name": name}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func addMember(t *testing.T, projectID, userID uint, role string) {
	t.Helper()

	membership := models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	require.NoError(t, db.DB.Create(&membership).Error)
}
