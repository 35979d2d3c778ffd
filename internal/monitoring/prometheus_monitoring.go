package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// https://prometheus.io/docs/guides/go-application/

const namespace = "catalog_admin"

var (
	catalogLoadsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "The total number of section product list loads by outcome",
	}, []string{"outcome"})
	productSubmissionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_submissions_total",
		Help:      "The total number of product edit form submissions by outcome",
	}, []string{"outcome"})
	imageUploadsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "The total number of product image uploads by storage driver and outcome",
	}, []string{"driver", "outcome"})
	httpRequestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Admin HTTP requests by route template, method and status class",
	}, []string{"route", "method", "class"})
	imageUploadBytesMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_upload_bytes_total",
		Help:      "Bytes written to storage by successful image uploads",
	})
)

func TickCatalogLoad(outcome string) {
	catalogLoadsMetric.WithLabelValues(outcome).Inc()
}

func TickProductSubmission(outcome string) {
	productSubmissionsMetric.WithLabelValues(outcome).Inc()
}

func TickImageUpload(driver, outcome string) {
	imageUploadsMetric.WithLabelValues(driver, outcome).Inc()
}

func AddImageUploadBytes(n int64) {
	if n > 0 {
		imageUploadBytesMetric.Add(float64(n))
	}
}

// TickHTTPRequest counts one request. route must be the route template,
// never the raw path.
func TickHTTPRequest(route, method string, status int) {
	httpRequestsMetric.WithLabelValues(route, method, strconv.Itoa(status/100)+"xx").Inc()
}
