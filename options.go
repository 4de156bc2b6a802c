package apicheck

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rescuedex/apicheck/respcache"
)

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets the HTTP client used to fetch endpoints. Use this to
// control timeouts, transports, or to inject a test client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets a custom logger. If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracerProvider sets an OpenTelemetry tracer provider. Each check
// produces one span. If not provided, tracing is a no-op.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Checker) {
		if tp != nil {
			c.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithMeterProvider sets an OpenTelemetry meter provider for the check and
// failure counters. If not provided, metrics are a no-op.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Checker) {
		if mp != nil {
			c.meter = mp.Meter(instrumentationName)
		}
	}
}

// WithCache sets a response cache consulted before each fetch. The checker
// takes ownership: Close closes the cache.
func WithCache(cache respcache.Cache) Option {
	return func(c *Checker) {
		c.cache = cache
	}
}

// WithCacheTTL sets how long fetched bodies stay cached. The default is
// five minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Checker) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithUserAgent sets the User-Agent header sent with fetches.
func WithUserAgent(ua string) Option {
	return func(c *Checker) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}
