package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"yatube/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// cachedPage is what the page cache stores for one URL.
type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder copies everything the handler writes.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCacheKey is the anonymous cache key of a request URI. The default feed is "page:/".
func PageCacheKey(requestURI string) string {
	return "page:" + requestURI
}

// requestCacheKey gives every signed-in user their own entries, since pages
// render the current user.
func requestCacheKey(c *gin.Context) string {
	uri := c.Request.URL.RequestURI()
	if user := CurrentUser(c); user != nil {
		return fmt.Sprintf("page:u%d:%s", user.ID, uri)
	}
	return PageCacheKey(uri)
}

// CachePage serves a stored copy of a successful GET response for ttl.
// Writes elsewhere do not invalidate it; only expiry or Store.Clear do.
// Entries are keyed by the full request URI, so each ?page= is cached
// separately, and signed-in users get their own entries (page:u<id>:<uri>)
// like a Vary: Cookie response. Anonymous visitors share page:/.
func CachePage(store cache.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := requestCacheKey(c)

		if raw, ok := store.Get(ctx, key); ok {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, page.ContentType, page.Body)
				c.Abort()
				return
			}
			log.Warn().Str("key", key).Msg("discarding unreadable cached page")
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Header("X-Cache", "MISS")
		c.Next()

		if recorder.Status() != http.StatusOK {
			return
		}
		raw, err := json.Marshal(cachedPage{
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Set(ctx, key, raw, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache page")
		}
	}
}
