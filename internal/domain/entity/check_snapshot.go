package entity

import (
	"time"
)

// CheckSnapshot is an archived copy of one route-check result
type CheckSnapshot struct {
	ID               string                 `bson:"_id,omitempty" json:"id,omitempty"`
	RouteID          int64                  `bson:"routeId" json:"route_id"`
	CheckedAt        time.Time              `bson:"checkedAt" json:"checked_at"`
	HasTickets       bool                   `bson:"hasTickets" json:"has_tickets"`
	DatesWithTickets []string               `bson:"datesWithTickets" json:"dates_with_tickets"`
	Details          map[string][]TripOffer `bson:"details" json:"details"`
}
