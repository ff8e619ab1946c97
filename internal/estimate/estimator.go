// Package estimate holds the occupation-duration heuristic. The estimator
// is an interface so alternate models (historical per-activity averages)
// can replace the catalog lookup without touching the detectors.
package estimate

import (
	"context"
	"errors"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/catalogservice"
)

// DurationEstimator maps an optional linked activity to an expected
// occupation length in minutes. Implementations never fail: a missing or
// unreachable source degrades to the default estimate.
type DurationEstimator interface {
	EstimateMinutes(ctx context.Context, activityID *int64) int
}

// CatalogClient интерфейс клиента каталога активностей
type CatalogClient interface {
	GetActivityWithGracefulDegradation(ctx context.Context, activityID int64) (*catalogservice.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// CatalogEstimator derives durations from the catalog's expected minutes
// per activity, falling back to a fixed default
type CatalogEstimator struct {
	catalog        CatalogClient
	defaultMinutes int
	logger         Logger
}

// NewCatalogEstimator creates an estimator backed by the catalog client
func NewCatalogEstimator(catalog CatalogClient, logger Logger) *CatalogEstimator {
	return &CatalogEstimator{
		catalog:        catalog,
		defaultMinutes: domain.DefaultOccupationMinutes,
		logger:         logger,
	}
}

// EstimateMinutes returns the expected occupation length for the linked
// activity, or the default when no activity is linked or the catalog is
// degraded
func (e *CatalogEstimator) EstimateMinutes(ctx context.Context, activityID *int64) int {
	if activityID == nil {
		return e.defaultMinutes
	}

	activity, err := e.catalog.GetActivityWithGracefulDegradation(ctx, *activityID)
	if err != nil {
		if !errors.Is(err, catalogservice.ErrActivityNotFound) {
			e.logger.Warn("estimate: catalog degraded for activity_id=%d, using default %d min: %v",
				*activityID, e.defaultMinutes, err)
		}
		return e.defaultMinutes
	}

	if activity.ExpectedMinutes <= 0 {
		return e.defaultMinutes
	}

	return activity.ExpectedMinutes
}

// Fixed is a constant estimator, used in tests and as a no-catalog fallback
type Fixed struct {
	Minutes int
}

// EstimateMinutes returns the fixed estimate regardless of activity
func (f Fixed) EstimateMinutes(_ context.Context, _ *int64) int {
	return f.Minutes
}
