package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Expenses-tracker-app/backend/internal/config"
	"github.com/Expenses-tracker-app/backend/internal/database"
	"github.com/Expenses-tracker-app/backend/internal/middleware"
	"github.com/Expenses-tracker-app/backend/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "p1"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 每个测试一个独立的共享内存库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Init(config.DatabaseConfig{Path: dsn})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "handler-test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	return router.SetupRouter(cfg, db), db
}

func doReq(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email, username string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"username":%q}`, email, testPassword, username)
	w := doReq(r, http.MethodPost, "/user/create", body, "")
	require.Equal(t, http.StatusOK, w.Code, "register: %s", w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	return resp.ID
}

func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	w := doReq(r, http.MethodPost, "/user/login", body, "")
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie && ck.Value != "" {
			return ck.Value
		}
	}
	t.Fatal("login did not set a token cookie")
	return ""
}

// signup registers a fresh user and logs them in.
func signup(t *testing.T, r *gin.Engine, email, username string) (uint, string) {
	t.Helper()
	id := registerUser(t, r, email, username)
	return id, loginUser(t, r, email, testPassword)
}

func createTag(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()
	w := doReq(r, http.MethodPost, "/tag/create", fmt.Sprintf(`{"tag_name":%q}`, name), token)
	require.Equal(t, http.StatusOK, w.Code, "create tag: %s", w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func createExpense(t *testing.T, r *gin.Engine, token string, tagID uint, desc string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"date":"2024-05-17","amount":12.5,"desc":%q,"tag_id":%d}`, desc, tagID)
	w := doReq(r, http.MethodPost, "/expense/create", body, token)
	require.Equal(t, http.StatusOK, w.Code, "create expense: %s", w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}
