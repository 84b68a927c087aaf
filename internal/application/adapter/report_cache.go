package adapter

import (
	"context"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// ReportCache stores aggregated report tables. Any transaction write must call
// Invalidate so that cached tables never outlive the data they were built from.
type ReportCache interface {
	// Get returns the cached table, or nil when absent, together with the
	// cache generation the lookup was made against.
	Get(ctx context.Context, dimension entity.ReportDimension, period valueobject.DateRange) (*entity.ReportTable, int64, error)

	// Set stores the table under the generation returned by the Get that
	// preceded the aggregation. A table built across an Invalidate is
	// therefore written under a retired generation and never served.
	Set(ctx context.Context, generation int64, table *entity.ReportTable, period valueobject.DateRange) error

	// Invalidate discards every cached table.
	Invalidate(ctx context.Context) error
}
