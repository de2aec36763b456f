package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codebliss/internal/config"
	"codebliss/internal/handlers"
	"codebliss/internal/repository"
	"codebliss/internal/services"
	"codebliss/pkg/preview"
	"codebliss/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!"

// newTestServer serves the real API over TLS so the Secure session cookie
// round-trips through the jar.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+utils.NewID()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		AccessTokenSecret: "client-test-secret",
		AccessTokenExpiry: time.Hour,
		CORSOrigin:        "http://localhost:5173",
		ClientURL:         "http://localhost:5173",
		JSONPayloadLimit:  16 << 10,
	}
	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenExpiry, nil, logger)
	h := handlers.NewHandler(cfg, logger,
		services.NewUserService(db, tokens),
		services.NewProjectService(db),
		tokens,
		nil,
		services.NewQRService(cfg.ClientURL),
	)

	srv := httptest.NewTLSServer(h.SetupRouter(nil, nil))
	t.Cleanup(srv.Close)
	return srv
}

func newSignedInClient(t *testing.T, srv *httptest.Server, username string) *Client {
	t.Helper()
	ctx := context.Background()
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Signup(ctx, SignupInput{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	_, err = c.Signin(ctx, username, testPassword)
	require.NoError(t, err)
	return c
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	user, err := c.Signup(ctx, SignupInput{Name: "Ada", Username: "ada", Email: "ada@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.False(t, c.State().Auth().IsAuthenticated)

	_, err = c.Profile(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Signin(ctx, "ada@example.com", testPassword)
	require.NoError(t, err)
	auth := c.State().Auth()
	assert.True(t, auth.IsAuthenticated)
	assert.Equal(t, user.ID, auth.User.ID)

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)

	require.NoError(t, c.Signout(ctx))
	assert.False(t, c.State().Auth().IsAuthenticated)

	_, err = c.Profile(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), SignupInput{Name: "Al", Username: "al", Email: "bad", Password: "weak"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Please correct the highlighted fields and try again.", apiErr.Message)
	assert.Len(t, apiErr.Fields, 4)
}

func TestNetworkFailureUsesGenericMessage(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	srv.Close()

	_, err = c.Signin(context.Background(), "ada", testPassword)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, GenericMessage, apiErr.Message)
	assert.NotNil(t, apiErr.Err)
}

func TestNonJSONResponseUsesGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.GetAllMyProjects(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, GenericMessage, apiErr.Message)
}

func TestProjectCache(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := newSignedInClient(t, srv, "cacher")
	state := c.State()

	list, err := c.GetAllMyProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalProjects)
	assert.True(t, state.IsCached(OpGetAllMyProjects))

	p, err := c.CreateProject(ctx, "Cached")
	require.NoError(t, err)
	assert.False(t, state.IsCached(OpGetAllMyProjects))

	list, err = c.GetAllMyProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalProjects)

	_, err = c.GetAProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, state.IsCached(OpGetAProject, p.ID))

	renamed, err := c.UpdateProjectName(ctx, p.ID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)
	assert.False(t, state.IsCached(OpGetAProject, p.ID))
	assert.False(t, state.IsCached(OpGetAllMyProjects))

	fetched, err := c.GetAProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)

	require.NoError(t, c.DeleteAProject(ctx, p.ID))
	_, err = c.GetAProject(ctx, p.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestEditorSaveAndFork(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	owner := newSignedInClient(t, srv, "owner")
	other := newSignedInClient(t, srv, "other")

	p, err := owner.CreateProject(ctx, "Editable")
	require.NoError(t, err)

	_, err = owner.OpenProject(ctx, p.ID)
	require.NoError(t, err)
	state := owner.State()
	state.SetCurrentLanguage(LanguageHTML)
	require.True(t, state.UpdateCurrentCode("<h1>Saved</h1>"))
	state.SetCurrentLanguage(LanguageCSS)
	require.True(t, state.UpdateCurrentCode(""))
	state.SetCurrentLanguage(LanguageJavaScript)
	require.True(t, state.UpdateCurrentCode(""))

	saved, err := owner.SaveCurrentProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview.Code{HTML: "<h1>Saved</h1>"}, saved.Code)
	assert.Contains(t, owner.Preview(), "data:text/html;charset=utf-8,")

	var buf bytes.Buffer
	name, err := owner.DownloadCurrentProject(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Editable.zip", name)
	assert.NotZero(t, buf.Len())

	_, err = other.UpdateProjectCode(ctx, p.ID, preview.Code{CSS: "body{}"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	fork, err := other.ForkAProject(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, fork.ID)
	assert.Equal(t, saved.Code, fork.Code)

	_, err = owner.ForkAProject(ctx, p.ID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCachedResultsAreCopies(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := newSignedInClient(t, srv, "copier")

	p, err := c.CreateProject(ctx, "Original")
	require.NoError(t, err)

	fetched, err := c.GetAProject(ctx, p.ID)
	require.NoError(t, err)
	fetched.Name = "Tampered"
	fetched.Code.HTML = "<p>tampered</p>"

	cached, err := c.GetAProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", cached.Name)
	assert.Equal(t, p.Code, cached.Code)

	list, err := c.GetAllMyProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list.Projects, 1)
	list.TotalProjects = 99
	list.Projects[0].Name = "Tampered"
	list.Projects = append(list.Projects, ProjectSummary{ID: "extra"})

	cachedList, err := c.GetAllMyProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cachedList.TotalProjects)
	require.Len(t, cachedList.Projects, 1)
	assert.Equal(t, "Original", cachedList.Projects[0].Name)
}
