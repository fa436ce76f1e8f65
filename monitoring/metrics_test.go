package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusFrameMetricsRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusFrameMetrics(reg)

	m.RecordFrame(1, 6.5)
	m.RecordComponentUpdate(3)
	m.RecordComponentUpdate(20)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestDepthLabelCapsCardinality(t *testing.T) {
	assert.Equal(t, "3", depthLabel(3))
	assert.Equal(t, "15", depthLabel(15))
	assert.Equal(t, "16+", depthLabel(16))
	assert.Equal(t, "16+", depthLabel(40))
}

func TestNoopFrameMetricsDoesNotPanic(t *testing.T) {
	var m NoopFrameMetrics
	m.RecordFrame(1, 1)
	m.RecordComponentUpdate(1)
}
