package cache

import (
	gometrics "github.com/docker/go-metrics"

	"github.com/localhub/localhub/metrics"
)

// lookups counts cache reads per bucket, labeled with the outcome.
var lookups gometrics.LabeledCounter

func init() {
	lookups = metrics.CacheNamespace.NewLabeledCounter(
		"lookups", "number of cache lookups", "bucket", "result")
}
