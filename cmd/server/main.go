package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/infrastructure/config"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/infrastructure/persistence"
	gormRepo "github.com/dvoretskiyy/UKZTrainMonitor/internal/interface/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/interface/telegram"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/interface/uzapi"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/usecase"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting UKZ Train Monitor")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN not configured")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI,
		&gormRepo.Users{}, &gormRepo.Routes{}, &gormRepo.Monitorings{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up the optional MongoDB check-history archive
	var mongoClient *mongo.Client
	var checkLogRepo repository.CheckLogRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		checkLogRepo = gormRepo.NewMongoCheckLogRepository(db)
	} else {
		log.Info("MongoDB not configured, check history archive disabled")
	}

	// Set up repositories
	routeRepo := gormRepo.NewGormRouteRepository(gormDB, log)
	monitoringRepo := gormRepo.NewGormMonitoringRepository(gormDB, log)

	// Set up the booking API gateway
	uzClient := uzapi.NewClient(cfg, log)

	// Set up notification channels
	sender := telegram.NewBotSender(cfg.BotToken, log)
	caller := telegram.NewCallGateway(cfg.CallerServiceURL, cfg.CallerToken, log)
	caller.Initialize(ctx)

	dispatcher := usecase.NewNotificationDispatcher(sender, caller, cfg.NotificationAccount, cfg.Timezone, log)

	// Set up metrics and the monitor loop
	m := metrics.NewMetrics("ukz_monitor")
	monitor := usecase.NewTicketMonitor(
		routeRepo,
		monitoringRepo,
		checkLogRepo,
		uzClient,
		dispatcher,
		m,
		log,
		usecase.DefaultMonitorConfig(cfg.MonitoringInterval),
	)

	// Start the monitor loop in a goroutine
	go monitor.Run(ctx)

	// Set up HTTP server for metrics and check history
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/api/routes/", routeChecksHandler(checkLogRepo, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown: stop the monitor first and wait it out
	cancel()
	<-monitor.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("UKZ Train Monitor stopped")
}

// routeChecksHandler serves GET /api/routes/{id}/checks from the archive
func routeChecksHandler(checkLog repository.CheckLogRepository, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checkLog == nil {
			http.Error(w, "check history archive disabled", http.StatusNotFound)
			return
		}

		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/routes/"), "/")
		if len(parts) != 2 || parts[1] != "checks" {
			http.NotFound(w, r)
			return
		}
		routeID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "invalid route id", http.StatusBadRequest)
			return
		}

		snapshots, err := checkLog.FindRecentByRoute(r.Context(), routeID, 20)
		if err != nil {
			log.Error("Failed to load check history", "routeId", routeID, "error", err)
			http.Error(w, "failed to load check history", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshots)
	}
}
