package entity

import (
	"errors"
	"time"
)

// ErrEmptyWagonClasses is returned when a route would be left without any
// wagon class to match against
var ErrEmptyWagonClasses = errors.New("route must have at least one wagon class")

// User represents a registered bot user
type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	IsActive   bool
	CreatedAt  time.Time
}

// Route is a user-configured monitoring target
type Route struct {
	ID              int64
	UserID          int64
	StationFromID   int64
	StationFromName string
	StationToID     int64
	StationToName   string
	Dates           []string // ISO dates, caller-ordered
	WagonClasses    []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks route invariants before persisting
func (r *Route) Validate() error {
	if len(r.WagonClasses) == 0 {
		return ErrEmptyWagonClasses
	}
	return nil
}

// ActiveRoute is a route joined with its owner's contact identity, as
// consumed by the monitor loop
type ActiveRoute struct {
	Route
	TelegramID int64
	Username   string
}
