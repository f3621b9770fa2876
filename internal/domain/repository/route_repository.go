package repository

import (
	"context"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
)

// RouteRepository defines the interface for route and user operations
type RouteRepository interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*entity.User, error)
	CreateRoute(ctx context.Context, route *entity.Route) (*entity.Route, error)
	GetUserRoutes(ctx context.Context, telegramID int64) ([]*entity.Route, error)
	GetRouteByID(ctx context.Context, routeID int64) (*entity.Route, error)
	UpdateWagonClasses(ctx context.Context, routeID int64, wagonClasses []string) error
	ToggleRouteActive(ctx context.Context, routeID int64) (bool, error)
	DeleteRoute(ctx context.Context, routeID int64) error
	GetActiveRoutes(ctx context.Context) ([]*entity.ActiveRoute, error)
}
