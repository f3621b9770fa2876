package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"

	"gorm.io/gorm"
)

// StringList stores a string slice as a JSONB column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Users GORM model for database mapping
type Users struct {
	ID         int64  `gorm:"primaryKey"`
	TelegramID int64  `gorm:"column:telegram_id;uniqueIndex;not null"`
	Username   string `gorm:"column:username"`
	FirstName  string `gorm:"column:first_name"`
	LastName   string `gorm:"column:last_name"`
	IsActive   bool   `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (Users) TableName() string {
	return "users"
}

// Routes GORM model for database mapping
type Routes struct {
	ID              int64      `gorm:"primaryKey"`
	UserID          int64      `gorm:"column:user_id;index;not null"`
	User            Users      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StationFromID   int64      `gorm:"column:station_from_id;not null"`
	StationFromName string     `gorm:"column:station_from_name;not null"`
	StationToID     int64      `gorm:"column:station_to_id;not null"`
	StationToName   string     `gorm:"column:station_to_name;not null"`
	Dates           StringList `gorm:"column:dates;type:jsonb;not null"`
	WagonClasses    StringList `gorm:"column:wagon_classes;type:jsonb;not null"`
	IsActive        bool       `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Routes) TableName() string {
	return "routes"
}

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB, logger logger.Logger) repository.RouteRepository {
	return &GormRouteRepository{
		db:     db,
		logger: logger,
	}
}

func toRouteEntity(r *Routes) *entity.Route {
	return &entity.Route{
		ID:              r.ID,
		UserID:          r.UserID,
		StationFromID:   r.StationFromID,
		StationFromName: r.StationFromName,
		StationToID:     r.StationToID,
		StationToName:   r.StationToName,
		Dates:           r.Dates,
		WagonClasses:    r.WagonClasses,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// GetOrCreateUser finds a user by telegram id, registering them on first contact
func (r *GormRouteRepository) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*entity.User, error) {
	var user Users
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user = Users{
			TelegramID: telegramID,
			Username:   username,
			FirstName:  firstName,
			LastName:   lastName,
			IsActive:   true,
		}
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		r.logger.Info("New user registered", "telegramId", telegramID, "username", username)
	} else if result.Error != nil {
		return nil, result.Error
	}

	return &entity.User{
		ID:         user.ID,
		TelegramID: user.TelegramID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
	}, nil
}

// CreateRoute stores a new route and its monitoring record
func (r *GormRouteRepository) CreateRoute(ctx context.Context, route *entity.Route) (*entity.Route, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	row := Routes{
		UserID:          route.UserID,
		StationFromID:   route.StationFromID,
		StationFromName: route.StationFromName,
		StationToID:     route.StationToID,
		StationToName:   route.StationToName,
		Dates:           StringList(route.Dates),
		WagonClasses:    StringList(route.WagonClasses),
		IsActive:        true,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&Monitorings{RouteID: row.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Created route", "routeId", row.ID, "userId", row.UserID)
	return toRouteEntity(&row), nil
}

// GetUserRoutes returns all routes owned by a telegram user, newest first
func (r *GormRouteRepository) GetUserRoutes(ctx context.Context, telegramID int64) ([]*entity.Route, error) {
	var user Users
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return []*entity.Route{}, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	var rows []Routes
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	routes := make([]*entity.Route, 0, len(rows))
	for i := range rows {
		routes = append(routes, toRouteEntity(&rows[i]))
	}
	return routes, nil
}

// GetRouteByID finds a route by id
func (r *GormRouteRepository) GetRouteByID(ctx context.Context, routeID int64) (*entity.Route, error) {
	var row Routes
	if err := r.db.WithContext(ctx).Where("id = ?", routeID).First(&row).Error; err != nil {
		return nil, err
	}
	return toRouteEntity(&row), nil
}

// UpdateWagonClasses replaces the wanted wagon-class set of a route.
// An empty set is rejected, never applied.
func (r *GormRouteRepository) UpdateWagonClasses(ctx context.Context, routeID int64, wagonClasses []string) error {
	if len(wagonClasses) == 0 {
		return entity.ErrEmptyWagonClasses
	}

	return r.db.WithContext(ctx).Model(&Routes{}).
		Where("id = ?", routeID).
		Updates(map[string]interface{}{
			"wagon_classes": StringList(wagonClasses),
			"updated_at":    time.Now(),
		}).Error
}

// ToggleRouteActive flips the active flag and returns the new state
func (r *GormRouteRepository) ToggleRouteActive(ctx context.Context, routeID int64) (bool, error) {
	var row Routes
	if err := r.db.WithContext(ctx).Select("id", "is_active").Where("id = ?", routeID).First(&row).Error; err != nil {
		return false, err
	}

	newStatus := !row.IsActive
	err := r.db.WithContext(ctx).Model(&Routes{}).
		Where("id = ?", routeID).
		Updates(map[string]interface{}{
			"is_active":  newStatus,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return false, err
	}

	r.logger.Info("Toggled route status", "routeId", routeID, "isActive", newStatus)
	return newStatus, nil
}

// DeleteRoute removes a route; its monitoring record cascades with it
func (r *GormRouteRepository) DeleteRoute(ctx context.Context, routeID int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", routeID).Delete(&Routes{}).Error; err != nil {
		return err
	}
	r.logger.Info("Deleted route", "routeId", routeID)
	return nil
}

type activeRouteRow struct {
	Routes
	TelegramID int64  `gorm:"column:telegram_id"`
	Username   string `gorm:"column:username"`
}

// GetActiveRoutes returns every active route joined with its owner's contact
// identity. Inactive routes are filtered in SQL, so a toggle is visible to
// the next monitoring cycle.
func (r *GormRouteRepository) GetActiveRoutes(ctx context.Context) ([]*entity.ActiveRoute, error) {
	var rows []activeRouteRow
	err := r.db.WithContext(ctx).
		Table("routes").
		Select("routes.*, users.telegram_id, users.username").
		Joins("JOIN users ON users.id = routes.user_id").
		Where("routes.is_active = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	routes := make([]*entity.ActiveRoute, 0, len(rows))
	for i := range rows {
		routes = append(routes, &entity.ActiveRoute{
			Route:      *toRouteEntity(&rows[i].Routes),
			TelegramID: rows[i].TelegramID,
			Username:   rows[i].Username,
		})
	}
	return routes, nil
}
