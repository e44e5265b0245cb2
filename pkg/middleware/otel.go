package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/navrouter/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "navrouter"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "navrouter").
	TracerName string

	// IncludeURL records the pushed URL as a span attribute.
	// Enabled by default.
	IncludeURL bool

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(nav router.Navigation) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ctx context.Context, nav router.Navigation) []attribute.KeyValue

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeURL enables/disables recording the pushed URL.
func WithIncludeURL(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeURL = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx context.Context, nav router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithTracerProvider sets the tracer provider instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		IncludeURL: true,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// Each span is named "navrouter.<kind>" and carries the kind, steps and
// (optionally) URL. Errors are recorded and set the span status.
// The tracer comes from the global provider unless WithTracerProvider is
// given; configure it with otel.SetTracerProvider before navigating.
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return router.MiddlewareFunc(func(ctx context.Context, nav router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}
		if ctx == nil {
			ctx = context.Background()
		}

		attrs := []attribute.KeyValue{
			attribute.String("navrouter.kind", string(nav.Kind)),
		}
		if nav.Kind != router.KindPush {
			attrs = append(attrs, attribute.Int("navrouter.steps", nav.Steps))
		}
		if config.IncludeURL && nav.URL != "" {
			attrs = append(attrs, attribute.String("navrouter.url", nav.URL))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx, nav)...)
		}

		_, span := config.tracer.Start(ctx,
			fmt.Sprintf("navrouter.%s", nav.Kind),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
