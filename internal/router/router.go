// Package router wraps gin with the request discipline the
// translation service expects: every request gets a uuid id and a
// child logger carrying it, so pass-level log lines (search timings,
// compose timings) can be tied back to the request that triggered
// them. The id is echoed in the X-Request-Id response header.
package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kegliz/qtranslate/internal/logger"
)

const loggerKey = "logger"

var requestCount int64

type Router struct {
	*gin.Engine
	log *logger.Logger
	srv *http.Server
}

// NewRouter creates a router with recovery and request-logging
// middleware installed.
func NewRouter(log *logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })
	return &Router{Engine: engine, log: log}
}

// Handle registers a handler and logs the registration.
func (r *Router) Handle(method, pattern string, h gin.HandlerFunc) {
	r.Engine.Handle(method, pattern, h)
	r.log.Info().Msgf("Route %s %s registered", method, pattern)
}

// Start starts the server.
// If localOnly is true, the server will only be accessible from localhost.
func (r *Router) Start(port int, localOnly bool) error {
	var ip string
	if localOnly {
		ip = "127.0.0.1"
	}
	r.srv = &http.Server{
		Addr:    fmt.Sprintf(ip+":%d", port),
		Handler: r,
	}
	return r.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server without interrupting any
// active connections.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.srv == nil {
		return fmt.Errorf("router: no server to shutdown")
	}
	return r.srv.Shutdown(ctx)
}

// LoggerFrom returns the request-scoped logger injected by the
// middleware, falling back to fallback when absent (direct handler
// tests).
func LoggerFrom(c *gin.Context, fallback *logger.Logger) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return fallback
}

// requestLogger tags each request with a count and a uuid, injects a
// child logger carrying both, and logs the served request with a level
// matching the status class.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := strconv.FormatInt(atomic.AddInt64(&requestCount, 1), 10)
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.Must(uuid.NewRandom()).String()
		}
		c.Writer.Header().Set("X-Request-Id", reqID)

		l := log.SpawnForContext(count, reqID)
		c.Set(loggerKey, l)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := l.Info()
		switch {
		case status >= http.StatusInternalServerError:
			evt = l.Error()
		case status >= http.StatusBadRequest:
			evt = l.Warn()
		}
		evt.
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("statuscode", status).
			Dur("latency", time.Since(start)).
			Msg("Request served")
	}
}
