// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/searchpulse/searchpulse/schema"
)

// RunStore defines the interface for persisting engine runs and their
// classified metric rows. This allows mocking the store for testing.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalEntities int) error

	// RecordComparison stores the classified rows of one entity comparison.
	RecordComparison(runID int64, set schema.EntityComparisonSet, precision int) error

	// GetAllRuns returns every persisted run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllMetricRows returns every persisted metric delta row.
	GetAllMetricRows() ([]schema.MetricRowRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all persisted runs and rows.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the run store.
type StoreManager interface {
	GetRunStore() RunStore
}
