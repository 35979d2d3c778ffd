package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(imageUploadsMetric.WithLabelValues("local", "ok"))
	TickImageUpload("local", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(imageUploadsMetric.WithLabelValues("local", "ok")))

	bytesBefore := testutil.ToFloat64(imageUploadBytesMetric)
	AddImageUploadBytes(2048)
	assert.Equal(t, bytesBefore+2048, testutil.ToFloat64(imageUploadBytesMetric))

	loads := testutil.ToFloat64(catalogLoadsMetric.WithLabelValues("error"))
	TickCatalogLoad("error")
	assert.Equal(t, loads+1, testutil.ToFloat64(catalogLoadsMetric.WithLabelValues("error")))

	subs := testutil.ToFloat64(productSubmissionsMetric.WithLabelValues("invalid"))
	TickProductSubmission("invalid")
	assert.Equal(t, subs+1, testutil.ToFloat64(productSubmissionsMetric.WithLabelValues("invalid")))

	reqs := testutil.ToFloat64(httpRequestsMetric.WithLabelValues("/admin/productos/:seccion", "GET", "4xx"))
	TickHTTPRequest("/admin/productos/:seccion", "GET", 404)
	assert.Equal(t, reqs+1, testutil.ToFloat64(httpRequestsMetric.WithLabelValues("/admin/productos/:seccion", "GET", "4xx")))
}
