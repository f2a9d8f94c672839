package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestRecordParse(t *testing.T) {
	before := counterValue(t, ParsesTotal.WithLabelValues("title", "success"))

	RecordParse("title", "success", 0.002)

	assert.Equal(t, before+1, counterValue(t, ParsesTotal.WithLabelValues("title", "success")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := counterValue(t, CacheLookupsTotal.WithLabelValues("title", "hit"))
	misses := counterValue(t, CacheLookupsTotal.WithLabelValues("title", "miss"))

	RecordCacheLookup("title", true)
	RecordCacheLookup("title", false)
	RecordCacheLookup("title", false)

	assert.Equal(t, hits+1, counterValue(t, CacheLookupsTotal.WithLabelValues("title", "hit")))
	assert.Equal(t, misses+2, counterValue(t, CacheLookupsTotal.WithLabelValues("title", "miss")))
}

func TestRecordDocument(t *testing.T) {
	before := counterValue(t, DocumentsProcessed.WithLabelValues("person", "error"))
	RecordDocument("person", "error")
	assert.Equal(t, before+1, counterValue(t, DocumentsProcessed.WithLabelValues("person", "error")))
}
