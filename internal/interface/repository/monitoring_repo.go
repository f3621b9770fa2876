package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"

	"gorm.io/gorm"
)

// ResultColumn stores an AvailabilityResult snapshot as a JSONB column
type ResultColumn entity.AvailabilityResult

// Value implements driver.Valuer
func (c ResultColumn) Value() (driver.Value, error) {
	return json.Marshal(entity.AvailabilityResult(c))
}

// Scan implements sql.Scanner
func (c *ResultColumn) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type %T for ResultColumn", value)
	}
}

// Monitorings GORM model for database mapping
type Monitorings struct {
	ID               int64         `gorm:"primaryKey"`
	RouteID          int64         `gorm:"column:route_id;index;not null"`
	Route            Routes        `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	LastCheck        *time.Time    `gorm:"column:last_check"`
	LastResult       *ResultColumn `gorm:"column:last_result;type:jsonb"`
	CheckCount       int64         `gorm:"column:check_count;default:0"`
	FoundTickets     bool          `gorm:"column:found_tickets;default:false"`
	NotificationSent bool          `gorm:"column:notification_sent;default:false"`
	CreatedAt        time.Time
}

// TableName overrides the default table name
func (Monitorings) TableName() string {
	return "monitorings"
}

// GormMonitoringRepository implements the MonitoringRepository interface
type GormMonitoringRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMonitoringRepository creates a new GORM monitoring repository
func NewGormMonitoringRepository(db *gorm.DB, logger logger.Logger) repository.MonitoringRepository {
	return &GormMonitoringRepository{
		db:     db,
		logger: logger,
	}
}

// RecordResult stores the outcome of a completed check cycle. The counter
// bump rides on the same statement, so check_count advances exactly once
// per recorded cycle.
func (r *GormMonitoringRepository) RecordResult(ctx context.Context, routeID int64, result *entity.AvailabilityResult, foundTickets bool) error {
	snapshot := ResultColumn(*result)
	now := time.Now()

	res := r.db.WithContext(ctx).Model(&Monitorings{}).
		Where("route_id = ?", routeID).
		Updates(map[string]interface{}{
			"last_check":    now,
			"last_result":   snapshot,
			"check_count":   gorm.Expr("check_count + 1"),
			"found_tickets": foundTickets,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Update issued against a missing record; don't fail the cycle over it
		r.logger.Warn("Monitoring update matched no rows", "routeId", routeID)
	}
	return nil
}

// MarkNotificationSent flags the route as already notified
func (r *GormMonitoringRepository) MarkNotificationSent(ctx context.Context, routeID int64) error {
	return r.db.WithContext(ctx).Model(&Monitorings{}).
		Where("route_id = ?", routeID).
		Update("notification_sent", true).Error
}

// GetByRouteID finds the monitoring record of a route
func (r *GormMonitoringRepository) GetByRouteID(ctx context.Context, routeID int64) (*entity.MonitoringRecord, error) {
	var row Monitorings
	if err := r.db.WithContext(ctx).Where("route_id = ?", routeID).First(&row).Error; err != nil {
		return nil, err
	}

	record := &entity.MonitoringRecord{
		ID:               row.ID,
		RouteID:          row.RouteID,
		LastCheck:        row.LastCheck,
		CheckCount:       row.CheckCount,
		FoundTickets:     row.FoundTickets,
		NotificationSent: row.NotificationSent,
		CreatedAt:        row.CreatedAt,
	}
	if row.LastResult != nil {
		result := entity.AvailabilityResult(*row.LastResult)
		record.LastResult = &result
	}
	return record, nil
}
