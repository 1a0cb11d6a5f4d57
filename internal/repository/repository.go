// Package repository contains the pgx-backed persistence layer. Each
// aggregate gets its own repository struct over the shared pool; queries are
// hand-written SQL with positional parameters.
package repository

import (
	"time"

	"valuepm/pkg/metrics"
)

// observe records query duration; call as `defer observe("create", "projects", time.Now())`.
func observe(operation, table string, start time.Time) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
}
