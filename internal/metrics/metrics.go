// Package metrics expose les compteurs Prometheus du backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requêtes SQL par tenant et statut (ok, error, config_error)
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importony_tenant_queries_total",
			Help: "Total des requêtes SQL exécutées par tenant",
		},
		[]string{"tenant", "status"},
	)

	// Pools MySQL créés depuis le démarrage
	poolsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "importony_tenant_pools_created_total",
			Help: "Total des pools de connexions créés",
		},
	)

	// Opérations sur le stockage d'objets (upload, delete, move)
	blobOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importony_blob_operations_total",
			Help: "Total des opérations sur le stockage d'images",
		},
		[]string{"operation", "status"},
	)
)

func RecordQuery(tenant, status string) {
	queriesTotal.WithLabelValues(tenant, status).Inc()
}

func RecordPoolCreated() {
	poolsCreated.Inc()
}

func RecordBlobOperation(operation, status string) {
	blobOperations.WithLabelValues(operation, status).Inc()
}
