package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"OTEL_SERVICE_NAME", "OTEL_ENABLED", "OTEL_TRACE_SAMPLE_RATIO", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
			t.Setenv(key, "")
		}

		cfg := ConfigFromEnv()

		assert.Equal(t, "token-relay", cfg.ServiceName)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 0.1, cfg.SampleRatio)
		assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "relay-eu")
		t.Setenv("OTEL_ENABLED", "false")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "1")

		cfg := ConfigFromEnv()

		assert.Equal(t, "relay-eu", cfg.ServiceName)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 1.0, cfg.SampleRatio)
	})

	t.Run("out of range ratio keeps default", func(t *testing.T) {
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "3")

		assert.Equal(t, 0.1, ConfigFromEnv().SampleRatio)
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}

	shutdown, err := InitProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
