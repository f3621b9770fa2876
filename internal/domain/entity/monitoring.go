package entity

import (
	"time"
)

// MonitoringRecord tracks the check history of one route. Created alongside
// the route, deleted with it, never independently.
type MonitoringRecord struct {
	ID               int64
	RouteID          int64
	LastCheck        *time.Time
	LastResult       *AvailabilityResult
	CheckCount       int64
	FoundTickets     bool
	NotificationSent bool
	CreatedAt        time.Time
}
