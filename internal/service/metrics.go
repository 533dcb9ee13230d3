package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/PWalkow/ElasticsearchBundle/internal/manager"
)

var (
	bulkCommitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundle_bulk_commits_total",
			Help: "Total number of committed bulk batches",
		},
		[]string{"index"},
	)

	bulkOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundle_bulk_operations_total",
			Help: "Total number of committed bulk operations",
		},
		[]string{"index", "operation"},
	)
)

// MetricsNotifier is a manager.CommitNotifier that counts committed batches
// and operations in prometheus.
type MetricsNotifier struct{}

// Committed records the executed batch. A header entry maps the operation
// name to a metadata object carrying _index; body entries never do, so only
// headers are counted.
func (MetricsNotifier) Committed(indexName string, batch []map[string]any, _ manager.BulkParams) {
	bulkCommitsTotal.WithLabelValues(indexName).Inc()

	for _, entry := range batch {
		for _, op := range []manager.BulkOperation{
			manager.OpIndex, manager.OpCreate, manager.OpUpdate, manager.OpDelete,
		} {
			if meta, ok := entry[string(op)].(map[string]any); ok {
				if _, isHeader := meta["_index"]; isHeader {
					bulkOperationsTotal.WithLabelValues(indexName, string(op)).Inc()
					break
				}
			}
		}
	}
}
