// Package cache is an optional Redis response cache for the hot public
// listings. When no Redis client is configured the middleware is a no-op
// pass-through.
package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	eventsListPrefix   = "cache:events:list:"
	providerListPrefix = "cache:providers:list:"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// keyFor maps the two cacheable routes to namespaced keys. The query
// string is part of the key so filtered listings cache separately.
func keyFor(c *gin.Context) string {
	if c.Request.Method != "GET" {
		return ""
	}
	rawq := c.Request.URL.RawQuery
	switch c.FullPath() {
	case "/api/v1/events/public":
		return eventsListPrefix + sha1Hex("GET|/events/public|"+rawq)
	case "/api/v1/providers":
		return providerListPrefix + sha1Hex("GET|/providers|"+rawq)
	default:
		return ""
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache serves cached 2xx responses for the public listings and
// fills the cache on a miss.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		key := keyFor(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw

		c.Next()

		if bw.Status() >= 200 && bw.Status() < 300 {
			item := cachedBody{
				Status: bw.Status(),
				Header: c.Writer.Header(),
				Body:   buf.Bytes(),
			}
			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(c.Request.Context(), key, o.Bytes(), ttl).Err()
			}
			c.Writer.Header().Set("X-Cache", "MISS")
		}
	}
}

// Invalidator purges cached listings after writes. All methods are no-ops
// when Redis is not configured.
type Invalidator struct {
	rdb *redis.Client
}

func NewInvalidator(rdb *redis.Client) *Invalidator {
	return &Invalidator{rdb: rdb}
}

func (ci *Invalidator) purgePrefix(ctx context.Context, prefix string) {
	if ci == nil || ci.rdb == nil {
		return
	}
	iter := ci.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (ci *Invalidator) PurgeEventLists(ctx context.Context) {
	ci.purgePrefix(ctx, eventsListPrefix)
}

func (ci *Invalidator) PurgeProviderLists(ctx context.Context) {
	ci.purgePrefix(ctx, providerListPrefix)
}
