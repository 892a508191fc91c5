package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestOperations_NoopProviders(t *testing.T) {
	ops := NewOperations("uat_test_operations_total", "test operations")

	ctx, op := ops.Start(context.Background(), "test.op", attribute.Int64("id", 1))
	require.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		op.SetAttributes(attribute.String("k", "v"))
		op.End(OutcomeError, errors.New("boom"))
	})
}

func TestInitTelemetry_Disabled(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "uat"})
	require.NoError(t, err)
	assert.Nil(t, p.TracerProvider)
	assert.Nil(t, p.MeterProvider)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitTelemetry_MetricsOnly(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "uat", MetricsEnabled: true})
	require.NoError(t, err)
	require.NotNil(t, p.MeterProvider)
	assert.NotNil(t, p.PrometheusExporter)
	assert.NoError(t, p.Shutdown(context.Background()))
}
