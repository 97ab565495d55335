package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/confessly-dev/confessly/db"
	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "confessly.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)

	users := store.NewUserStore(gdb)
	sessions := store.NewSessionStore(gdb)
	confessions := store.NewConfessionStore(gdb)

	r := NewRouter(Deps{
		Auth:        auth.NewService(users, sessions, tokens),
		Confessions: confessions,
		Cookies:     types.CookieConfig{Secure: false},
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, target string, payload interface{}) (int, []byte) {
	t.Helper()

	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, responseBody
}

func registerAndLogin(t *testing.T, client *http.Client, base, username, email, password string) {
	t.Helper()

	status, _ := doJSON(t, client, http.MethodPost, base+"/api/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, client, http.MethodPost, base+"/api/login", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
}

func TestEndToEndFlow(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, string(body), `"username":"alice"`)

	status, _ = doJSON(t, client, http.MethodPost, server.URL+"/api/login", gin.H{
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, client, http.MethodPost, server.URL+"/api/create_confession", gin.H{
		"confession": "hello",
	})
	require.Equal(t, http.StatusCreated, status)

	var created struct {
		Confession types.ConfessionResponse `json:"confession"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, uint(1), created.Confession.ID)
	assert.Equal(t, "hello", created.Confession.Text)

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/all_confessions", nil)
	require.Equal(t, http.StatusOK, status)

	var listed []types.ConfessionResponse
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, types.ConfessionResponse{ID: 1, Text: "hello"}, listed[0])

	status, body = doJSON(t, client, http.MethodPut, server.URL+"/api/edit_confession/1", gin.H{
		"confession": "world",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"text":"world"`)

	status, _ = doJSON(t, client, http.MethodPost, server.URL+"/api/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, client, http.MethodPut, server.URL+"/api/edit_confession/1", gin.H{
		"confession": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOwnershipEnforced(t *testing.T) {
	server := newTestServer(t)

	alice := newClient(t)
	registerAndLogin(t, alice, server.URL, "alice", "a@x.com", "pw1")

	status, _ := doJSON(t, alice, http.MethodPost, server.URL+"/api/create_confession", gin.H{
		"confession": "alice's secret",
	})
	require.Equal(t, http.StatusCreated, status)

	bob := newClient(t)
	registerAndLogin(t, bob, server.URL, "bob", "b@x.com", "pw2")

	status, _ = doJSON(t, bob, http.MethodPut, server.URL+"/api/edit_confession/1", gin.H{
		"confession": "bob was here",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, bob, http.MethodDelete, server.URL+"/api/delete_confession/1", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, bob, http.MethodGet, server.URL+"/api/all_confessions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "alice's secret")
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	registerAndLogin(t, client, server.URL, "alice", "a@x.com", "pw1")

	status, _ := doJSON(t, client, http.MethodPut, server.URL+"/api/edit_confession/999", gin.H{
		"confession": "x",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, client, http.MethodPost, server.URL+"/api/create_confession", gin.H{
		"confession": "hello",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, client, http.MethodDelete, server.URL+"/api/delete_confession/1", nil)
	require.Equal(t, http.StatusOK, status)

	// The former owner gets 404 after deletion, never 403.
	status, _ = doJSON(t, client, http.MethodPut, server.URL+"/api/edit_confession/1", gin.H{
		"confession": "world",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDuplicateRegistration(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, _ := doJSON(t, client, http.MethodPost, server.URL+"/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/register", gin.H{
		"username": "someone",
		"email":    "a@x.com",
		"password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "already exists")
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, _ := doJSON(t, client, http.MethodPost, server.URL+"/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, wrongPassword := doJSON(t, client, http.MethodPost, server.URL+"/api/login", gin.H{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, unknownEmail := doJSON(t, client, http.MethodPost, server.URL+"/api/login", gin.H{
		"email":    "nobody@x.com",
		"password": "pw1",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	assert.JSONEq(t, string(wrongPassword), string(unknownEmail))
}

func TestCheckAuth(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodGet, server.URL+"/api/check_auth", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"user":null`)

	registerAndLogin(t, client, server.URL, "alice", "a@x.com", "pw1")

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/check_auth", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"alice"`)
}

func TestUnauthenticatedMutationsRejected(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, _ := doJSON(t, client, http.MethodPost, server.URL+"/api/create_confession", gin.H{
		"confession": "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, client, http.MethodDelete, server.URL+"/api/delete_confession/1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, client, http.MethodPost, server.URL+"/api/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestValidationErrorsNameTheConstraint(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	registerAndLogin(t, client, server.URL, "alice", "a@x.com", "pw1")

	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/create_confession", gin.H{
		"confession": strings.Repeat("a", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "at most 1000 characters")
}

func TestBearerTokenAccepted(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status, _ := doJSON(t, client, http.MethodPost, server.URL+"/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, status)

	resp, err := http.Post(server.URL+"/api/login", "application/json",
		strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/create_confession",
		strings.NewReader(`{"confession":"via header"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	headerResp, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	defer headerResp.Body.Close()
	assert.Equal(t, http.StatusCreated, headerResp.StatusCode)
}

func TestPageSurface(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	getPage := func(path string) (int, string) {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	postForm := func(path string, form url.Values) (int, string) {
		resp, err := client.PostForm(server.URL+path, form)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := getPage("/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Confessly")

	// Register lands on the login page with a flash message.
	status, body = postForm("/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Registration successful! Please log in.")

	status, body = postForm("/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Signed in as alice")

	status, body = postForm("/confessions", url.Values{
		"confession": {"from the page"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "from the page")
	assert.Contains(t, body, "Confession submitted successfully!")

	status, body = postForm("/confessions/1/edit", url.Values{
		"confession": {"edited on the page"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "edited on the page")

	status, body = postForm("/confessions/1/delete", url.Values{})
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "edited on the page")

	status, body = postForm("/logout", url.Values{})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Logged out successfully")
	assert.NotContains(t, body, "Signed in as alice")
}

func TestPageLoginRejectsBadCredentials(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(server.URL+"/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"pw1"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid email or password")
}
