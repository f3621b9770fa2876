package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/metrics"
)

// TripGateway is the booking API surface the monitor needs
type TripGateway interface {
	FetchTrips(ctx context.Context, stationFromID, stationToID int64, date string, withTransfers bool) (*entity.TripSet, error)
}

// Notifier delivers found-tickets alerts
type Notifier interface {
	NotifyTicketsFound(ctx context.Context, route *entity.ActiveRoute, result *entity.AvailabilityResult) error
}

// MonitorConfig holds the loop timing knobs. The pacing windows keep the
// sequential polling under the upstream rate limit.
type MonitorConfig struct {
	Interval      time.Duration
	DateDelayMin  time.Duration
	DateDelayMax  time.Duration
	RouteDelayMin time.Duration
	RouteDelayMax time.Duration
}

// DefaultMonitorConfig returns the production pacing for a poll interval
func DefaultMonitorConfig(interval time.Duration) MonitorConfig {
	return MonitorConfig{
		Interval:      interval,
		DateDelayMin:  1 * time.Second,
		DateDelayMax:  2 * time.Second,
		RouteDelayMin: 2 * time.Second,
		RouteDelayMax: 5 * time.Second,
	}
}

// TicketMonitor periodically checks every active route for tickets. The
// loop is strictly sequential: one route at a time, one date at a time.
type TicketMonitor struct {
	routeRepo      repository.RouteRepository
	monitoringRepo repository.MonitoringRepository
	checkLog       repository.CheckLogRepository // optional, may be nil
	gateway        TripGateway
	notifier       Notifier
	metrics        *metrics.Metrics
	logger         logger.Logger
	cfg            MonitorConfig
	done           chan struct{}
}

// NewTicketMonitor creates a new monitor loop
func NewTicketMonitor(
	routeRepo repository.RouteRepository,
	monitoringRepo repository.MonitoringRepository,
	checkLog repository.CheckLogRepository,
	gateway TripGateway,
	notifier Notifier,
	m *metrics.Metrics,
	log logger.Logger,
	cfg MonitorConfig,
) *TicketMonitor {
	return &TicketMonitor{
		routeRepo:      routeRepo,
		monitoringRepo: monitoringRepo,
		checkLog:       checkLog,
		gateway:        gateway,
		notifier:       notifier,
		metrics:        m,
		logger:         log,
		cfg:            cfg,
		done:           make(chan struct{}),
	}
}

// Done is closed once Run has fully stopped
func (m *TicketMonitor) Done() <-chan struct{} {
	return m.done
}

// Run blocks, checking all active routes every poll interval until the
// context is cancelled. A stop request is observed at the top of each cycle
// and at the top of the interval sleep; an in-flight route check is allowed
// to finish.
func (m *TicketMonitor) Run(ctx context.Context) {
	defer close(m.done)
	m.logger.Info("Ticket monitoring started", "interval", m.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Ticket monitoring stopped")
			return
		default:
		}

		if err := m.checkAllRoutes(ctx); err != nil {
			// Cycle-level failure; the loop retries after the normal interval
			m.logger.Error("Error in monitoring cycle", "error", err)
			m.metrics.ErrorsCount.WithLabelValues("cycle").Inc()
		}

		select {
		case <-ctx.Done():
			m.logger.Info("Ticket monitoring stopped")
			return
		case <-time.After(m.cfg.Interval):
		}
	}
}

func (m *TicketMonitor) checkAllRoutes(ctx context.Context) error {
	routes, err := m.routeRepo.GetActiveRoutes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active routes: %w", err)
	}

	m.logger.Info("Checking active routes", "count", len(routes))

	for idx, route := range routes {
		if err := m.checkRoute(ctx, route); err != nil {
			m.logger.Error("Error checking route", "routeId", route.ID, "error", err)
			m.metrics.ErrorsCount.WithLabelValues("route_check").Inc()
		}

		// Spread load between routes, but not after the last one
		if idx < len(routes)-1 {
			if !m.waitRandom(ctx, m.cfg.RouteDelayMin, m.cfg.RouteDelayMax) {
				return nil
			}
		}
	}

	return nil
}

func (m *TicketMonitor) checkRoute(ctx context.Context, route *entity.ActiveRoute) error {
	start := time.Now()
	trips := make(map[string]*entity.TripSet, len(route.Dates))

	for idx, date := range route.Dates {
		tripSet, err := m.gateway.FetchTrips(ctx, route.StationFromID, route.StationToID, date, false)
		if err != nil {
			// Transport failure for this one date; the rest still get checked
			m.logger.Warn("Trip fetch failed", "routeId", route.ID, "date", date, "error", err)
			m.metrics.ErrorsCount.WithLabelValues("fetch_trips").Inc()
		} else if tripSet != nil {
			trips[date] = tripSet
		}

		if idx < len(route.Dates)-1 {
			if !m.waitRandom(ctx, m.cfg.DateDelayMin, m.cfg.DateDelayMax) {
				return ctx.Err()
			}
		}
	}

	result := MatchAvailability(route.Dates, trips, route.WagonClasses)

	if err := m.monitoringRepo.RecordResult(ctx, route.ID, result, result.HasTickets); err != nil {
		return fmt.Errorf("failed to record monitoring result: %w", err)
	}
	m.metrics.RoutesChecked.Inc()
	m.metrics.CheckDuration.Observe(time.Since(start).Seconds())

	m.archiveSnapshot(ctx, route.ID, result)

	if result.HasTickets {
		m.logger.Info("Found tickets", "routeId", route.ID, "dates", result.DatesWithTickets)
		m.metrics.TicketsFound.Inc()

		if err := m.notifier.NotifyTicketsFound(ctx, route, result); err != nil {
			m.logger.Error("Error sending notification", "routeId", route.ID, "error", err)
			m.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		} else {
			m.metrics.NotificationsSent.Inc()
			if err := m.monitoringRepo.MarkNotificationSent(ctx, route.ID); err != nil {
				m.logger.Error("Failed to mark notification sent", "routeId", route.ID, "error", err)
			}
		}
	}

	return nil
}

// archiveSnapshot writes the check to the history archive, best-effort
func (m *TicketMonitor) archiveSnapshot(ctx context.Context, routeID int64, result *entity.AvailabilityResult) {
	if m.checkLog == nil {
		return
	}

	snapshot := &entity.CheckSnapshot{
		RouteID:          routeID,
		CheckedAt:        time.Now(),
		HasTickets:       result.HasTickets,
		DatesWithTickets: result.DatesWithTickets,
		Details:          result.Details,
	}
	if err := m.checkLog.Save(ctx, snapshot); err != nil {
		m.logger.Warn("Failed to archive check snapshot", "routeId", routeID, "error", err)
	}
}

// waitRandom sleeps a uniform duration in [min, max), returning false when
// the context was cancelled first
func (m *TicketMonitor) waitRandom(ctx context.Context, min, max time.Duration) bool {
	delay := min
	if max > min {
		delay = min + time.Duration(rand.Int63n(int64(max-min)))
	}
	if delay <= 0 {
		return ctx.Err() == nil
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}
