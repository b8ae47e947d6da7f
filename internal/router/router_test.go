package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/client-accounts/internal/config"
	"github.com/iliyamo/client-accounts/internal/database"
	"github.com/iliyamo/client-accounts/internal/handler"
	"github.com/iliyamo/client-accounts/internal/middleware"
	"github.com/iliyamo/client-accounts/internal/model"
	"github.com/iliyamo/client-accounts/internal/repository"
	"github.com/iliyamo/client-accounts/internal/service"
)

func setupTestRouter(t *testing.T, withRedis bool) *echo.Echo {
	t.Helper()
	return setupTestRouterWith(t, withRedis, nil)
}

// setupTestRouterWith lets wrap decorate the SQLite-backed store.
func setupTestRouterWith(t *testing.T, withRedis bool, wrap func(handler.ClientStore) handler.ClientStore) *echo.Echo {
	t.Helper()
	log := zap.NewNop().Sugar()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.EnsureSchema(context.Background(), db))

	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	rl := config.RateLimitConfig{
		Enabled: true, Capacity: 1000, RefillTokens: 1,
		RefillInterval: time.Second, TTL: time.Minute, KeyStrategy: "ip", Prefix: "rl",
	}
	cache := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true},
		TTL: time.Minute, Prefix: "cache:client", MaxBodyBytes: 1 << 20,
	}

	var store handler.ClientStore = repository.NewClientRepo(db)
	if wrap != nil {
		store = wrap(store)
	}
	clients := handler.NewClientHandler(store, service.NopPublisher{}, log)
	return New(clients, Options{
		Log:       log,
		BodyLimit: "1K",
		Health:    handler.Health(db),
		Cache:     middleware.NewRedisCache(cache, rdb, log),
		RateLimit: middleware.NewTokenBucket(rl, rdb, log),
	})
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClientLifecycle(t *testing.T) {
	e := setupTestRouter(t, true)

	rec := do(e, http.MethodPost, "/client", `{"numCompte":1,"nom":"A","solde":300}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(e, http.MethodPost, "/client/", `{"numCompte":1,"nom":"A","solde":300}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodGet, "/client/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"numCompte":1,"nom":"A","solde":300,"obs":"insuffisant"}]`, rec.Body.String())
	rec = do(e, http.MethodGet, "/client/", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	// the update must not be hidden by the cached list
	rec = do(e, http.MethodPut, "/client/1", `{"nom":"A","solde":4000}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodGet, "/client/", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `[{"numCompte":1,"nom":"A","solde":4000,"obs":"moyen"}]`, rec.Body.String())

	rec = do(e, http.MethodGet, "/client/soldeminmax", "")
	assert.JSONEq(t, `{"success":true,"summary":{"soldeMinimal":4000,"soldeMaximal":4000,"soldeTotal":4000}}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/client/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/client/1", "").Code)

	rec = do(e, http.MethodGet, "/client", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
	rec = do(e, http.MethodGet, "/client/soldeminmax", "")
	assert.JSONEq(t, `{"success":true,"summary":{"soldeMinimal":0,"soldeMaximal":0,"soldeTotal":0}}`, rec.Body.String())
}

// pausingStore holds the first List after it has read the rows, until
// release is closed.
type pausingStore struct {
	handler.ClientStore
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (s *pausingStore) List(ctx context.Context) ([]model.Client, error) {
	out, err := s.ClientStore.List(ctx)
	s.once.Do(func() {
		close(s.read)
		<-s.release
	})
	return out, err
}

func TestDeleteDuringSlowListIsVisible(t *testing.T) {
	ps := &pausingStore{read: make(chan struct{}), release: make(chan struct{})}
	e := setupTestRouterWith(t, true, func(inner handler.ClientStore) handler.ClientStore {
		ps.ClientStore = inner
		return ps
	})
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/client/", `{"numCompte":1,"nom":"A","solde":300}`).Code)

	slow := make(chan *httptest.ResponseRecorder)
	go func() { slow <- do(e, http.MethodGet, "/client/", "") }()

	<-ps.read
	require.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/client/1", "").Code)
	close(ps.release)

	rec := <-slow
	assert.JSONEq(t, `[{"numCompte":1,"nom":"A","solde":300,"obs":"insuffisant"}]`, rec.Body.String())

	rec = do(e, http.MethodGet, "/client/", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHeadReadRoutes(t *testing.T) {
	e := setupTestRouter(t, false)

	for _, path := range []string{"/client", "/client/", "/client/soldeminmax"} {
		rec := do(e, http.MethodHead, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestWithoutRedis(t *testing.T) {
	e := setupTestRouter(t, false)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/client/", `{"numCompte":7,"nom":"B","solde":9000}`).Code)
	rec := do(e, http.MethodGet, "/client/", "")
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `[{"numCompte":7,"nom":"B","solde":9000,"obs":"élevé"}]`, rec.Body.String())
}

func TestUnknownRoutes(t *testing.T) {
	e := setupTestRouter(t, true)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/client/add"},
		{http.MethodPatch, "/client/1"},
	} {
		rec := do(e, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, rec.Body.String())
	}
}

func TestBodyLimit(t *testing.T) {
	e := setupTestRouter(t, false)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{
		"numCompte": 1, "nom": strings.Repeat("x", 4096), "solde": 1,
	}))
	rec := do(e, http.MethodPost, "/client/", buf.String())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestCORS(t *testing.T) {
	e := setupTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/client/", nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestHealthz(t *testing.T) {
	e := setupTestRouter(t, false)
	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
