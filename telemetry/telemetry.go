// Package telemetry configures OpenTelemetry tracing for the tally command.
// Tracing is off unless enabled through the environment; spans are shipped
// over OTLP/HTTP to the configured collector.
package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amp-labs/amp-ranked/logger"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfig reads the tracing configuration from v. Each setting can come
// from a TALLY_ prefixed variable or from the standard OTEL_ one, in that
// order of precedence.
func LoadConfig(v *viper.Viper, serviceName string) (*Config, error) {
	for key, env := range map[string]string{
		"otel-enabled":         "OTEL_ENABLED",
		"otel-service-name":    "OTEL_SERVICE_NAME",
		"otel-service-version": "OTEL_SERVICE_VERSION",
		"otel-endpoint":        "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		"otel-timeout":         "OTEL_EXPORTER_OTLP_TRACES_TIMEOUT",
	} {
		if err := v.BindEnv(key, "TALLY_"+env, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	v.SetDefault("otel-enabled", "false")
	v.SetDefault("otel-service-name", serviceName)
	v.SetDefault("otel-service-version", defaultServiceVersion)
	v.SetDefault("otel-timeout", defaultTimeout.String())

	enabled, err := strconv.ParseBool(v.GetString("otel-enabled"))
	if err != nil {
		return nil, fmt.Errorf("OTEL_ENABLED: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString("otel-timeout"))
	if err != nil {
		return nil, fmt.Errorf("OTEL_EXPORTER_OTLP_TRACES_TIMEOUT: %w", err)
	}

	return &Config{
		ServiceName:    v.GetString("otel-service-name"),
		ServiceVersion: v.GetString("otel-service-version"),
		Endpoint:       v.GetString("otel-endpoint"),
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Provider owns the tracer provider created by Initialize.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// TracerProvider returns the underlying provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.provider
}

// Shutdown flushes buffered spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}

	logger.Get(ctx).Debug("Shutting down OpenTelemetry tracer provider")

	return p.provider.Shutdown(ctx)
}

// Initialize sets up OpenTelemetry tracing with the given configuration and
// installs it as the global provider. It returns a nil Provider when tracing
// is disabled or no endpoint is configured.
func Initialize(ctx context.Context, config *Config) (*Provider, error) {
	log := logger.Get(ctx)

	if config == nil || !config.Enabled {
		log.Debug("OpenTelemetry tracing is disabled")

		return nil, nil //nolint:nilnil
	}

	if config.Endpoint == "" {
		log.Warn("OpenTelemetry endpoint not configured, tracing will be disabled")

		return nil, nil //nolint:nilnil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Debug("OpenTelemetry tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"endpoint", config.Endpoint,
	)

	return &Provider{provider: provider}, nil
}
