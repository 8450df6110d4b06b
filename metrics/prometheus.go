package metrics

import "github.com/docker/go-metrics"

const (
	// NamespacePrefix is the namespace of prometheus metrics
	NamespacePrefix = "localhub"
)

var (
	// StorageNamespace is the prometheus namespace of file/sidecar related
	// operations
	StorageNamespace = metrics.NewNamespace(NamespacePrefix, "storage", nil)

	// CacheNamespace is the prometheus namespace of cache related operations
	CacheNamespace = metrics.NewNamespace(NamespacePrefix, "cache", nil)
)

func init() {
	metrics.Register(StorageNamespace)
	metrics.Register(CacheNamespace)
}
