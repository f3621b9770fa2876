package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"
	"github.com/dvoretskiyy/UKZTrainMonitor/templates"
)

// NotificationDispatcher delivers found-tickets alerts. The message channel
// is mandatory; the voice channel is a capability-checked optional extra
// whose failures never escalate past this boundary.
type NotificationDispatcher struct {
	sender              repository.MessageSender
	caller              repository.VoiceCaller // may be nil
	logger              logger.Logger
	location            *time.Location
	notificationAccount string
}

// NewNotificationDispatcher creates a new dispatcher. tzName controls how
// trip times render in alerts; an unknown zone falls back to UTC.
func NewNotificationDispatcher(
	sender repository.MessageSender,
	caller repository.VoiceCaller,
	notificationAccount string,
	tzName string,
	log logger.Logger,
) *NotificationDispatcher {
	location, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warn("Unknown timezone, falling back to UTC", "timezone", tzName)
		location = time.UTC
	}

	return &NotificationDispatcher{
		sender:              sender,
		caller:              caller,
		logger:              log,
		location:            location,
		notificationAccount: notificationAccount,
	}
}

// NotifyTicketsFound sends the alert for one route. The primary message is
// attempted unconditionally; its failure is the only error returned. The
// voice call is attempted only when the caller reports itself initialized,
// otherwise a plain-text reminder goes out over the primary channel.
func (d *NotificationDispatcher) NotifyTicketsFound(ctx context.Context, route *entity.ActiveRoute, result *entity.AvailabilityResult) error {
	text := templates.RenderTicketAlert(route, result, d.location)

	if err := d.sender.SendMessage(ctx, route.TelegramID, text); err != nil {
		return fmt.Errorf("failed to send ticket alert: %w", err)
	}

	if d.caller != nil && d.caller.IsInitialized() {
		var usernames []string
		if route.Username != "" {
			usernames = []string{route.Username}
		}
		if err := d.caller.CallRecipients(ctx, []int64{route.TelegramID}, usernames); err != nil {
			d.logger.Error("Voice alert failed", "routeId", route.ID, "telegramId", route.TelegramID, "error", err)
		}
	} else {
		reminder := templates.RenderCallFallback(d.notificationAccount)
		if err := d.sender.SendMessage(ctx, route.TelegramID, reminder); err != nil {
			d.logger.Error("Failed to send call fallback reminder", "telegramId", route.TelegramID, "error", err)
		}
	}

	d.logger.Info("Sent notification", "telegramId", route.TelegramID, "routeId", route.ID)
	return nil
}
