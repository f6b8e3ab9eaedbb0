package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-url-shortener/config"
	"go-url-shortener/storage"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newAPIClient(t *testing.T, store storage.Store) *apiClient {
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()

	router, err := NewRouter(context.Background(), cfg, store, zap.NewNop())
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &apiClient{
		t:      t,
		server: server,
		client: &http.Client{
			// redirects are asserted, not followed
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
	}
}

func (a *apiClient) do(method, path, token string, body interface{}) (*http.Response, []byte) {
	a.t.Helper()
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(a.t, err, "Failed to marshal request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reqBody)
	require.NoError(a.t, err, "Failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := a.client.Do(req)
	require.NoError(a.t, err, "Failed to send request")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err, "Failed to read response body")
	return resp, respBody
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	resp, body := a.do(http.MethodPost, "/auth/register", "", types.Credentials{Email: email, Password: password})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = a.do(http.MethodPost, "/auth/login", "", types.Credentials{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, resp.StatusCode, string(body))

	var login types.LoginResponse
	require.NoError(a.t, json.Unmarshal(body, &login))
	require.True(a.t, strings.HasPrefix(login.AccessToken, "Bearer "))
	return login.AccessToken
}

func (a *apiClient) list(token string) types.URLPage {
	a.t.Helper()
	resp, body := a.do(http.MethodGet, "/user/urls", token, nil)
	require.Equal(a.t, http.StatusOK, resp.StatusCode, string(body))

	var page types.URLPage
	require.NoError(a.t, json.Unmarshal(body, &page))
	return page
}

func memoryStore(t *testing.T) storage.Store {
	return storage.NewInMemoryStorage(zap.NewNop())
}

func sqliteStore(t *testing.T) storage.Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	store, err := storage.Open(storage.DriverSQLite, dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEndToEnd(t *testing.T) {
	for name, newStore := range map[string]func(*testing.T) storage.Store{
		"memory": memoryStore,
		"sqlite": sqliteStore,
	} {
		t.Run(name, func(t *testing.T) {
			api := newAPIClient(t, newStore(t))
			runScenario(t, api)
		})
	}
}

func runScenario(t *testing.T, api *apiClient) {
	token := api.login("user@example.com", "secret1")

	t.Run("Duplicate registration", func(t *testing.T) {
		resp, body := api.do(http.MethodPost, "/auth/register", "", types.Credentials{Email: "user@example.com", Password: "secret1"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "Email already in use")
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp, _ := api.do(http.MethodPost, "/auth/login", "", types.Credentials{Email: "user@example.com", Password: "wrong-pass"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	resp, body := api.do(http.MethodPost, "/url", token, types.ShortenRequest{TargetURL: "https://example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var shortened types.ShortenResponse
	require.NoError(t, json.Unmarshal(body, &shortened))
	require.Regexp(t, `^http://localhost:3000/[A-Za-z0-9]{6}$`, shortened.ShortURL)
	code := shortened.ShortURL[strings.LastIndex(shortened.ShortURL, "/")+1:]

	t.Run("Anonymous shorten is not owned", func(t *testing.T) {
		resp, _ := api.do(http.MethodPost, "/url", "", types.ShortenRequest{TargetURL: "https://anonymous.example"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	page := api.list(token)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.TotalEntries)
	assert.Equal(t, code, page.Data[0].ShortCode)
	assert.Equal(t, int64(0), page.Data[0].Clicks)

	resp, _ = api.do(http.MethodGet, "/"+code, "", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com", resp.Header.Get("Location"))

	page = api.list(token)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Data[0].Clicks)

	t.Run("Update target", func(t *testing.T) {
		resp, body := api.do(http.MethodPatch, "/user/url", token, types.UpdateURLRequest{ShortCode: code, NewURL: "https://example.org"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var view types.URLView
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Equal(t, "https://example.org", view.TargetURL)
		assert.Equal(t, int64(1), view.Clicks)

		resp, _ = api.do(http.MethodGet, "/"+code, "", nil)
		assert.Equal(t, "https://example.org", resp.Header.Get("Location"))
	})

	t.Run("Other users cannot see the link", func(t *testing.T) {
		other := api.login("other@example.com", "secret2")

		resp, _ := api.do(http.MethodGet, "/user/url/"+code, other, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp, _ = api.do(http.MethodDelete, "/user/url", other, types.DeleteURLRequest{ShortCode: code})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Empty(t, api.list(other).Data)
	})

	t.Run("Owner routes require a token", func(t *testing.T) {
		resp, body := api.do(http.MethodGet, "/user/urls", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(body), "Token not provided")

		resp, body = api.do(http.MethodGet, "/user/urls", "Bearer forged", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid or expired token")
	})

	t.Run("Soft delete", func(t *testing.T) {
		resp, body := api.do(http.MethodDelete, "/user/url", token, types.DeleteURLRequest{ShortCode: code})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var view types.URLView
		require.NoError(t, json.Unmarshal(body, &view))
		assert.NotNil(t, view.DeletedAt)

		resp, _ = api.do(http.MethodGet, "/"+code, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp, _ = api.do(http.MethodGet, "/user/url/"+code, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		page := api.list(token)
		assert.Equal(t, int64(0), page.TotalEntries)
		assert.Equal(t, 0, page.LastPage)
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
	})
}

func TestEndToEndPagination(t *testing.T) {
	api := newAPIClient(t, memoryStore(t))
	token := api.login("pager@example.com", "secret1")

	for i := 0; i < 15; i++ {
		resp, _ := api.do(http.MethodPost, "/url", token, types.ShortenRequest{TargetURL: fmt.Sprintf("https://example.com/%d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := api.do(http.MethodGet, "/user/urls?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page types.URLPage
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Data, 5)
	assert.Equal(t, int64(15), page.TotalEntries)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, "https://example.com/4", page.Data[0].TargetURL, "Second page continues newest first")
}
