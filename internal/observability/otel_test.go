package observability

import (
	"context"
	"testing"

	"store_manager/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracingWithoutExporter(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.Nop(), TracingConfig{ServiceName: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().HasTraceID())
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), logger.Nop(), TracingConfig{Exporter: "zipkin"})
	assert.EqualError(t, err, `unknown trace exporter "zipkin"`)
}

func TestExporterName(t *testing.T) {
	assert.Equal(t, ExporterNone, exporterName(""))
	assert.Equal(t, ExporterStdout, exporterName(" STDOUT "))
}
