package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trustsitter/internal/config"
	"trustsitter/internal/db"
	"trustsitter/internal/router"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	cfg := config.Config{
		Port:         "8080",
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
		AllowOrigins: []string{"*"},
	}
	return router.New(conn, zap.NewNop(), cfg, nil), conn
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	return l
}

// registerSitter creates a sitter account that already satisfies the
// completeness checks except for availability, and returns its token.
func registerSitter(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName":   "Sana",
		"lastName":    "Khan",
		"email":       email,
		"password":    "password123",
		"accountType": "sitter",
		"city":        "Springfield",
		"experience":  "2 years",
		"services":    []string{"newborn care"},
		"hourlyRate":  15,
		"bio":         "Experienced sitter",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func registerFamily(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName":     "Priya",
		"lastName":      "Patel",
		"email":         email,
		"password":      "password123",
		"accountType":   "family",
		"city":          "Springfield",
		"childrenCount": "2",
		"sittingNeeds":  "after-school",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func addAvailability(t *testing.T, r *gin.Engine, token, day, start, end string) uint {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/sitter/availability", token, map[string]string{
		"day": day, "startTime": start, "endTime": end,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	entry := decode(t, w)["availability"].(map[string]interface{})
	return uint(entry["id"].(float64))
}
