package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"grynvault-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"

	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At (in UTC).
	maxClockSkew = 10 * time.Minute

	retryAfterSecs = "1"
)

// replayEntry is what redis holds for one submission key.
type replayEntry struct {
	InProgress  bool      `json:"in_progress"`
	Status      int       `json:"status"`
	Response    []byte    `json:"response"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// cacheable is false for server errors and for answers the handler marked
// transient with Retry-After; the client may retry those with the same id.
func cacheable(rec *respRecorder) bool {
	if rec.code >= http.StatusInternalServerError {
		return false
	}
	return rec.Header().Get(echo.HeaderRetryAfter) == ""
}

func reject(c echo.Context, status int, code apperr.Code, msg string) error {
	body := map[string]string{"error": msg}
	if code != "" {
		body["code"] = string(code)
	}
	return c.JSON(status, body)
}

// Idempotency replays the stored response of a repeated submission.
// Key = method + route + X-Request-Id. X-Request-At must be epoch (seconds or ms)
// or RFC3339/RFC3339Nano with a timezone. Server errors are not cached so the
// client can retry with the same id, and neither are answers carrying Retry-After.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			// Only enforce on mutating methods
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			// Headers Validation
			reqID := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderRequestID)))
			if reqID == "" {
				return reject(c, http.StatusBadRequest, "", "missing "+HeaderRequestID)
			}
			if !validReqID(reqID) {
				return reject(c, http.StatusBadRequest, "", "invalid "+HeaderRequestID+" format")
			}

			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return reject(c, http.StatusBadRequest, "", err.Error())
			}
			if !withinSkew(reqAt, nowUTC()) {
				return reject(c, http.StatusBadRequest, "", HeaderRequestAt+" too skewed")
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			// Provisional lock key
			key := buildKey(method, c.Path(), reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := replayEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			ok, err := store.claim(ctx, key, entry)
			if err != nil {
				log.Error("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return reject(c, http.StatusServiceUnavailable, apperr.CodeStorageUnavailable, "idempotency store unavailable")
			}
			if !ok {
				// Key exists: body must match, and we may be able to replay
				cur, errLoad := store.load(ctx, key)
				if errLoad != nil {
					log.Warn("idempotency entry unreadable", zap.String("key", key), zap.Error(errLoad))
				}

				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return reject(c, http.StatusConflict, "", HeaderRequestID+" reused with different body")
				}
				if !cur.InProgress && cur.Status != 0 && len(cur.Response) > 0 {
					log.Debug("idempotent replay", zap.String("key", key), zap.Int("status", cur.Status))
					return c.Blob(cur.Status, echo.MIMEApplicationJSON, cur.Response)
				}
				c.Response().Header().Set(echo.HeaderRetryAfter, retryAfterSecs)
				return reject(c, http.StatusConflict, apperr.CodeSubmissionInFlight, "request is already in progress")
			}

			// Call next and record final response
			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if !cacheable(rec) {
				_ = store.release(context.Background(), key)
				return nil
			}
			final := replayEntry{
				InProgress:  false,
				Status:      rec.code,
				Response:    rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			if err := store.finish(context.Background(), key, final, ttl); err != nil {
				log.Warn("idempotency save failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
