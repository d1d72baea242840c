package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestLoadConfig(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name     string
		env      map[string]string
		expected Config
		wantErr  bool
	}{
		{
			name: "defaults",
			expected: Config{
				ServiceName:    "tally",
				ServiceVersion: defaultServiceVersion,
				Timeout:        defaultTimeout,
			},
		},
		{
			name: "standard variables",
			env: map[string]string{
				"OTEL_ENABLED":                       "true",
				"OTEL_SERVICE_NAME":                  "counter",
				"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT": "http://collector:4318/v1/traces",
				"OTEL_EXPORTER_OTLP_TRACES_TIMEOUT":  "2s",
			},
			expected: Config{
				ServiceName:    "counter",
				ServiceVersion: defaultServiceVersion,
				Endpoint:       "http://collector:4318/v1/traces",
				Enabled:        true,
				Timeout:        2 * time.Second,
			},
		},
		{
			name: "prefixed variables win",
			env: map[string]string{
				"OTEL_ENABLED":               "false",
				"TALLY_OTEL_ENABLED":         "true",
				"OTEL_SERVICE_NAME":          "counter",
				"TALLY_OTEL_SERVICE_VERSION": "2.1.0",
			},
			expected: Config{
				ServiceName:    "counter",
				ServiceVersion: "2.1.0",
				Enabled:        true,
				Timeout:        defaultTimeout,
			},
		},
		{
			name:    "bad bool",
			env:     map[string]string{"OTEL_ENABLED": "maybe"},
			wantErr: true,
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"OTEL_EXPORTER_OTLP_TRACES_TIMEOUT": "soon"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, env := range []string{
				"OTEL_ENABLED", "OTEL_SERVICE_NAME", "OTEL_SERVICE_VERSION",
				"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_TIMEOUT",
			} {
				t.Setenv(env, "")
				t.Setenv("TALLY_"+env, "")
			}

			for key, value := range test.env {
				t.Setenv(key, value)
			}

			config, err := LoadConfig(viper.New(), "tally")
			if test.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, *config)
		})
	}
}

func TestInitialize_Disabled(t *testing.T) {
	t.Parallel()

	provider, err := Initialize(t.Context(), &Config{Enabled: false, Endpoint: "http://localhost:4318"})
	require.NoError(t, err)
	assert.Nil(t, provider)

	provider, err = Initialize(t.Context(), &Config{Enabled: true})
	require.NoError(t, err)
	assert.Nil(t, provider)

	require.NoError(t, provider.Shutdown(t.Context()))
}

func TestInitialize_Exports(t *testing.T) { //nolint:paralleltest
	var received atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/traces" {
			received.Inc()
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	provider, err := Initialize(t.Context(), &Config{
		ServiceName:    "tally",
		ServiceVersion: "test",
		Endpoint:       srv.URL + "/v1/traces",
		Enabled:        true,
		Timeout:        time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, provider)

	_, span := provider.TracerProvider().Tracer("test").Start(t.Context(), "work")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
	assert.Positive(t, received.Load())
}
