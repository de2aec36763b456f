package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codebliss/internal/config"
	"codebliss/internal/middleware"
	"codebliss/internal/repository"
	"codebliss/internal/services"
	"codebliss/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!"

type testEnv struct {
	db     *gorm.DB
	mr     *miniredis.Miniredis
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+utils.NewID()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		CORSOrigin:        "http://localhost:5173",
		ClientURL:         "http://localhost:5173",
		JSONPayloadLimit:  16 << 10,
	}

	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenExpiry, rdb, logger)
	users := services.NewUserService(db, tokens)
	projects := services.NewProjectService(db)
	audit := services.NewAuditService(db, logger, services.NewGeoIPService(cfg, logger))
	qr := services.NewQRService(cfg.ClientURL)

	h := NewHandler(cfg, logger, users, projects, tokens, audit, qr)
	return &testEnv{
		db:     db,
		mr:     mr,
		router: h.SetupRouter(nil, middleware.NewMetrics()),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers username and signs in, returning the session cookie.
func (e *testEnv) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/users/signup", gin.H{
		"name":     "User " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/users/signin", gin.H{
		"identifier": username,
		"password":   testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == accessTokenCookie {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", accessTokenCookie)
	return nil
}

type apiResponse struct {
	Success       bool            `json:"success"`
	Status        int             `json:"status"`
	Message       string          `json:"message"`
	User          json.RawMessage `json:"user"`
	Project       json.RawMessage `json:"project"`
	Projects      json.RawMessage `json:"projects"`
	TotalProjects int             `json:"totalProjects"`
	Errors        []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

type projectJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code struct {
		HTML       string `json:"html"`
		CSS        string `json:"css"`
		JavaScript string `json:"javascript"`
	} `json:"code"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func decodeProject(t *testing.T, w *httptest.ResponseRecorder) projectJSON {
	t.Helper()
	var p projectJSON
	require.NoError(t, json.Unmarshal(decode(t, w).Project, &p))
	return p
}

func (e *testEnv) createProject(t *testing.T, cookie *http.Cookie, name string) projectJSON {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/projects/create", gin.H{"name": name}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeProject(t, w)
}
