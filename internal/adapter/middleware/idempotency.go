package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Money endpoints must be safe to retry: a client that resends a payment or
// voucher submission with the same Ax-Request-Id gets the first response
// replayed instead of a double-applied mutation.
//
// Mechanics: a provisional entry is written with SETNX before the handler
// runs; a concurrent duplicate sees it and backs off with 409; once the
// handler finishes, the recorded response replaces the provisional entry for
// the configured TTL.

const provisionalTTL = 60 * time.Second

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type bodyRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Idempotency(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
			if reqID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-Request-Id"})
			}
			if !validReqID(reqID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Request-Id format"})
			}
			actorID := strings.TrimSpace(req.Header.Get("Ax-Actor-Id"))
			if actorID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-Actor-Id"})
			}

			key := buildKey(req.Method, c.Path(), actorID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			provisional, _ := json.Marshal(idempEntry{InProgress: true, CreatedAt: time.Now().UTC()})
			ok, err := rdb.SetNX(ctx, key, provisional, provisionalTTL).Result()
			if err != nil {
				// the cache being down must not block money movement
				log.WithError(err).Warn("idempotency: redis unavailable, passing through")
				return next(c)
			}
			if !ok {
				raw, err := rdb.Get(ctx, key).Bytes()
				if err != nil {
					return c.JSON(http.StatusConflict, map[string]string{"error": "duplicate request"})
				}
				var entry idempEntry
				if json.Unmarshal(raw, &entry) == nil && !entry.InProgress {
					return c.Blob(entry.Code, echo.MIMEApplicationJSON, entry.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec

			handlerErr := next(c)

			if handlerErr == nil && rec.code < http.StatusInternalServerError {
				done, _ := json.Marshal(idempEntry{
					Code:      rec.code,
					Body:      rec.buf.Bytes(),
					CreatedAt: time.Now().UTC(),
				})
				if err := rdb.Set(ctx, key, done, ttl).Err(); err != nil {
					log.WithError(err).Warn("idempotency: failed to record response")
				}
			} else {
				// let the client retry failed attempts with the same id
				if err := rdb.Del(ctx, key).Err(); err != nil {
					log.WithError(err).Warn("idempotency: failed to release key")
				}
			}
			return handlerErr
		}
	}
}
