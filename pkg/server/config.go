package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/micro/pkg/storage"
)

// Config holds the server settings. The zero value of every field is
// replaced by its default in New.
type Config struct {
	// Addr is the TCP address to listen on.
	// Default: ":8080".
	Addr string

	// Title is the page title of the shell.
	// Default: "micro".
	Title string

	// Head is extra markup appended to the shell's <head>, typically a
	// <style> element. It is written verbatim.
	Head string

	// ReadLimit caps the size of one browser frame in bytes.
	// Default: 64 KiB.
	ReadLimit int64

	// PingInterval is the WebSocket keepalive period. A browser that does
	// not answer within two intervals is disconnected.
	// Default: 30s.
	PingInterval time.Duration

	// WriteTimeout bounds each frame write.
	// Default: 10s.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s.
	ShutdownTimeout time.Duration

	// Backend persists the storage of every session. Sessions see it
	// through a registry namespaced by their client id.
	// Default: an in-memory backend.
	Backend storage.Backend

	// Registry collects the server metrics and is served at /metrics.
	// Default: a fresh registry with Go and process collectors.
	Registry *prometheus.Registry

	// TracerName names the OpenTelemetry tracer for event spans.
	// Default: "micro".
	TracerName string

	// DevMode disables client script caching.
	DevMode bool

	// Logger is the base logger.
	// Default: slog.Default().
	Logger *slog.Logger

	// CheckOrigin validates WebSocket upgrade origins.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

// Defaults applied by New.
const (
	DefaultAddr            = ":8080"
	DefaultTitle           = "micro"
	DefaultReadLimit       = 64 << 10
	DefaultPingInterval    = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = DefaultReadLimit
	}
	if c.PingInterval <= 0 {
		c.PingInterval = DefaultPingInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Backend == nil {
		c.Backend = storage.NewMemoryBackend()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = SameOriginCheck
	}
	return c
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
// Requests without an Origin header are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
