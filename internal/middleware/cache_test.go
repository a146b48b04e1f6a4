package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"yatube/internal/cache"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCachePageServesStoredCopy(t *testing.T) {
	store, err := cache.NewMemoryStore(10)
	require.NoError(t, err)

	calls := 0
	r := gin.New()
	r.GET("/", CachePage(store, time.Minute), func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "render %d", calls)
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	first := get()
	assert.Equal(t, "render 1", first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get()
	assert.Equal(t, "render 1", second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	require.NoError(t, store.Clear(context.Background()))
	assert.Equal(t, "render 2", get().Body.String())
}

func TestCachePageSkipsErrors(t *testing.T) {
	store, err := cache.NewMemoryStore(10)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", CachePage(store, time.Minute), func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, ok := store.Get(context.Background(), PageCacheKey("/"))
	assert.False(t, ok)
}

func TestCachePageKeysByRequestURI(t *testing.T) {
	assert.Equal(t, "page:/", PageCacheKey("/"))
	assert.Equal(t, "page:/?page=2", PageCacheKey("/?page=2"))
}

func TestCachePageSeparatesSignedInUsers(t *testing.T) {
	store, err := cache.NewMemoryStore(10)
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.Query("as") == "7" {
			c.Set(CheckUserKey, &models.User{ID: 7, Username: "seven"})
		}
	})
	r.GET("/", CachePage(store, time.Minute), func(c *gin.Context) {
		name := "anonymous"
		if u := CurrentUser(c); u != nil {
			name = u.Username
		}
		c.String(http.StatusOK, name)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?as=7", nil))
	assert.Equal(t, "seven", w.Body.String())

	_, ok := store.Get(context.Background(), "page:u7:/?as=7")
	assert.True(t, ok)
	_, ok = store.Get(context.Background(), PageCacheKey("/?as=7"))
	assert.False(t, ok)
}
