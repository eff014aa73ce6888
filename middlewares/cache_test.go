package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegesphere/utils"
)

func cachedEngine(t *testing.T) (*gin.Engine, *redis.Client, *int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var hits int64
	engine := gin.New()
	engine.Use(ResponseCache(rdb, 30*time.Second))
	engine.GET("/api/event/AllEvents", func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []string{"a", "b"}})
	})
	engine.GET("/api/event/:eventId", func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return engine, rdb, &hits
}

func TestResponseCache_ServesSecondRequestFromCache(t *testing.T) {
	engine, _, hits := cachedEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/AllEvents", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	body := w.Body.String()

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/AllEvents", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, body, w.Body.String())
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func TestResponseCache_IgnoresUncachedRoutes(t *testing.T) {
	engine, _, hits := cachedEngine(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/some-id", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.EqualValues(t, 2, atomic.LoadInt64(hits))
}

func TestResponseCache_InvalidatorPurgesListings(t *testing.T) {
	engine, rdb, hits := cachedEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/AllEvents", nil))
	require.Equal(t, http.StatusOK, w.Code)

	inv := utils.NewCacheInvalidator(rdb)
	inv.PurgeEventLists(context.Background())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/AllEvents", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.EqualValues(t, 2, atomic.LoadInt64(hits))
}
