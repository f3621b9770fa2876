package repository

import (
	"context"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
)

// CheckLogRepository defines the interface for the check-history archive
type CheckLogRepository interface {
	Save(ctx context.Context, snapshot *entity.CheckSnapshot) error
	FindRecentByRoute(ctx context.Context, routeID int64, limit int) ([]*entity.CheckSnapshot, error)
}
