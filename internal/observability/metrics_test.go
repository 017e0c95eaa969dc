package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestRecordResolutionCountsBySource(t *testing.T) {
	before := testutil.ToFloat64(resolutionsCounter.WithLabelValues("fallback"))
	RecordResolution("fallback", 3*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(resolutionsCounter.WithLabelValues("fallback")))
}

func TestRecordCatalogLoad(t *testing.T) {
	failures := testutil.ToFloat64(catalogLoadFailures)
	RecordCatalogLoad(time.Time{}, errors.New("boom"))
	require.Equal(t, failures+1, testutil.ToFloat64(catalogLoadFailures))

	ts := time.Unix(1700000000, 0)
	RecordCatalogLoad(ts, nil)
	require.Equal(t, float64(ts.Unix()), testutil.ToFloat64(catalogLoadedGauge))
}

func TestRecordEventPublishedOutcome(t *testing.T) {
	RecordEventPublished("recommendation.resolved", errors.New("broker down"))
	require.GreaterOrEqual(t, testutil.ToFloat64(eventsPublished.WithLabelValues("recommendation.resolved", "failure")), 1.0)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/v1/catalog", "200"))
	RecordHTTPRequest("/v1/catalog", 200, 2*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/v1/catalog", "200")))
}

func TestRecordResolutionObservesDuration(t *testing.T) {
	before := histogramSampleCount(t)
	RecordResolution("generated", 12*time.Millisecond)
	require.Equal(t, before+1, histogramSampleCount(t))
}

func histogramSampleCount(t *testing.T) uint64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, resolutionDuration.Write(metric))
	hist := metric.GetHistogram()
	require.NotNil(t, hist)
	return hist.GetSampleCount()
}
