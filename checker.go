package apicheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/rescuedex/apicheck/registry"
	"github.com/rescuedex/apicheck/respcache"
	"github.com/rescuedex/apicheck/schema"
)

// instrumentationName identifies this module in traces and metrics.
const instrumentationName = "github.com/rescuedex/apicheck"

// Checker fetches JSON endpoints and validates the decoded bodies against
// named schemas from a registry. The schema validator itself never performs
// I/O; the Checker is the caller that owns the HTTP request, decoding, and
// reporting around it.
//
// A Checker is safe for concurrent use.
type Checker struct {
	reg       *registry.Registry
	client    *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	meter     metric.Meter
	cache     respcache.Cache
	cacheTTL  time.Duration
	userAgent string

	checkCounter metric.Int64Counter
	failCounter  metric.Int64Counter
}

// Report summarizes one endpoint check. Invalid responses are reported here
// as data, not as errors; the caller decides whether a failed result is
// fatal.
type Report struct {
	// ID uniquely identifies this check run.
	ID string `json:"id"`

	// URL is the endpoint that was checked.
	URL string `json:"url"`

	// Schema is the name of the schema the body was validated against.
	Schema string `json:"schema"`

	// StatusCode is the HTTP status of the response (200 for cache hits).
	StatusCode int `json:"status_code"`

	// Cached reports whether the body came from the response cache.
	Cached bool `json:"cached"`

	// Duration is the wall time of the fetch plus validation.
	Duration time.Duration `json:"duration"`

	// CheckedAt is when the check completed, in UTC.
	CheckedAt time.Time `json:"checked_at"`

	// Result is the validation outcome.
	Result schema.Result `json:"result"`
}

// New creates a Checker reading schemas from reg.
func New(reg *registry.Registry, opts ...Option) (*Checker, error) {
	const op = "apicheck.New"

	if reg == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("%w: registry is required", ErrInvalidConfig))
	}

	c := &Checker{
		reg:       reg,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    slog.Default(),
		tracer:    tracenoop.NewTracerProvider().Tracer(instrumentationName),
		meter:     metricnoop.NewMeterProvider().Meter(instrumentationName),
		cacheTTL:  5 * time.Minute,
		userAgent: "rescuedex-apicheck/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.checkCounter, err = c.meter.Int64Counter(
		"apicheck.checks",
		metric.WithDescription("Number of endpoint checks performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, NewInternalError(op, fmt.Errorf("create check counter: %w", err))
	}

	c.failCounter, err = c.meter.Int64Counter(
		"apicheck.failures",
		metric.WithDescription("Number of checks whose response failed validation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, NewInternalError(op, fmt.Errorf("create failure counter: %w", err))
	}

	return c, nil
}

// CheckObject fetches rawURL and validates the decoded body as a single
// object against the named schema. A non-nil Report with Result.Valid ==
// false means the endpoint answered but its body does not match; an error
// means the check itself could not run (unknown schema, transport failure,
// non-JSON body).
func (c *Checker) CheckObject(ctx context.Context, rawURL, schemaName string) (*Report, error) {
	return c.check(ctx, "Checker.CheckObject", rawURL, schemaName, false)
}

// CheckList is CheckObject for array endpoints: every element of the decoded
// array is validated against the named schema, with positional error paths.
func (c *Checker) CheckList(ctx context.Context, rawURL, schemaName string) (*Report, error) {
	return c.check(ctx, "Checker.CheckList", rawURL, schemaName, true)
}

// Close releases the checker's resources (currently the response cache, when
// one is configured).
func (c *Checker) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

func (c *Checker) check(ctx context.Context, op, rawURL, schemaName string, list bool) (*Report, error) {
	ctx, span := c.tracer.Start(ctx, "apicheck.Check")
	defer span.End()
	span.SetAttributes(
		attribute.String("apicheck.url", rawURL),
		attribute.String("apicheck.schema", schemaName),
	)

	s, ok := c.reg.Get(schemaName)
	if !ok {
		err := NewNotFoundError(op, fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaName))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	start := time.Now()
	body, status, cached, err := c.fetch(ctx, op, rawURL)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("apicheck.cached", cached))

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		derr := NewDecodeError(op, fmt.Errorf("decode response body: %w", err)).
			WithContext(map[string]any{"url": rawURL})
		span.SetStatus(codes.Error, derr.Error())
		return nil, derr
	}

	var result schema.Result
	if list {
		result = schema.ValidateArray(decoded, s)
	} else {
		result = schema.ValidateObject(decoded, s)
	}

	for _, w := range result.Warnings {
		c.logger.Warn("schema warning",
			"url", rawURL,
			"schema", schemaName,
			"warning", w)
	}

	attrs := metric.WithAttributes(attribute.String("schema", schemaName))
	c.checkCounter.Add(ctx, 1, attrs)
	if result.Valid {
		span.SetStatus(codes.Ok, "response matches schema")
	} else {
		c.failCounter.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, fmt.Sprintf("%d validation errors", len(result.Errors)))
		c.logger.Info("response failed validation",
			"url", rawURL,
			"schema", schemaName,
			"errors", len(result.Errors))
	}
	span.SetAttributes(
		attribute.Bool("apicheck.valid", result.Valid),
		attribute.Int("apicheck.error_count", len(result.Errors)),
	)

	return &Report{
		ID:         uuid.NewString(),
		URL:        rawURL,
		Schema:     schemaName,
		StatusCode: status,
		Cached:     cached,
		Duration:   time.Since(start),
		CheckedAt:  time.Now().UTC(),
		Result:     result,
	}, nil
}

// fetch returns the response body for rawURL, consulting the cache first.
// Cache failures degrade to a plain fetch rather than failing the check.
func (c *Checker) fetch(ctx context.Context, op, rawURL string) (body []byte, status int, cached bool, err error) {
	if c.cache != nil {
		b, hit, cerr := c.cache.Get(ctx, rawURL)
		if cerr != nil {
			c.logger.Warn("response cache read failed", "url", rawURL, "error", cerr)
		} else if hit {
			return b, http.StatusOK, true, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, false, NewConfigurationError(op, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, false, NewNetworkError(op, err)
	}
	defer CloseWithLog(resp.Body, c.logger, "response body")

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, false, NewNetworkError(op, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, false, NewNetworkError(op,
			fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)).
			WithContext(map[string]any{"url": rawURL, "status": resp.StatusCode})
	}

	if c.cache != nil {
		if cerr := c.cache.Set(ctx, rawURL, b, c.cacheTTL); cerr != nil {
			c.logger.Warn("response cache write failed", "url", rawURL, "error", cerr)
		}
	}

	return b, resp.StatusCode, false, nil
}
