package repository

import (
	"context"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
)

// MonitoringRepository defines the interface for monitoring-record updates
type MonitoringRepository interface {
	// RecordResult stores the outcome of one completed check cycle for a
	// route and bumps its check counter. Issued as a single statement;
	// callers treat success as "update issued", not row-level confirmation.
	RecordResult(ctx context.Context, routeID int64, result *entity.AvailabilityResult, foundTickets bool) error
	MarkNotificationSent(ctx context.Context, routeID int64) error
	GetByRouteID(ctx context.Context, routeID int64) (*entity.MonitoringRecord, error)
}
