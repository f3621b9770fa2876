package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	messages []sentMessage
	err      error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

type fakeCaller struct {
	initialized bool
	err         error
	calledIDs   []int64
	usernames   []string
}

func (f *fakeCaller) IsInitialized() bool { return f.initialized }

func (f *fakeCaller) CallRecipients(ctx context.Context, userIDs []int64, usernames []string) error {
	f.calledIDs = append(f.calledIDs, userIDs...)
	f.usernames = append(f.usernames, usernames...)
	return f.err
}

func foundResult() *entity.AvailabilityResult {
	return &entity.AvailabilityResult{
		HasTickets:       true,
		DatesWithTickets: []string{"2026-01-04"},
		Details: map[string][]entity.TripOffer{
			"2026-01-04": {{
				TrainNumber: "743К",
				DepartAt:    1767513720,
				ArriveAt:    1767527100,
				WagonType:   "К",
				WagonName:   "Купе",
				FreeSeats:   3,
				Price:       52000,
			}},
		},
	}
}

func TestNotifyTicketsFound_PrimaryAndVoice(t *testing.T) {
	sender := &fakeSender{}
	caller := &fakeCaller{initialized: true}
	d := NewNotificationDispatcher(sender, caller, "@UKZ_Notify_Bot", "Europe/Kiev", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(1, "2026-01-04"), foundResult())

	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, int64(1001), sender.messages[0].chatID)
	assert.Contains(t, sender.messages[0].text, "Шепетівка → Полонне")
	assert.Equal(t, []int64{1001}, caller.calledIDs)
	assert.Equal(t, []string{"rider"}, caller.usernames)
}

func TestNotifyTicketsFound_UninitializedCallerFallsBackToText(t *testing.T) {
	sender := &fakeSender{}
	caller := &fakeCaller{initialized: false}
	d := NewNotificationDispatcher(sender, caller, "@UKZ_Notify_Bot", "Europe/Kiev", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(2, "2026-01-04"), foundResult())

	require.NoError(t, err)
	require.Len(t, sender.messages, 2)
	assert.Contains(t, sender.messages[1].text, "@UKZ_Notify_Bot")
	assert.Empty(t, caller.calledIDs)
}

func TestNotifyTicketsFound_NilCallerFallsBackToText(t *testing.T) {
	sender := &fakeSender{}
	d := NewNotificationDispatcher(sender, nil, "@UKZ_Notify_Bot", "Europe/Kiev", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(3, "2026-01-04"), foundResult())

	require.NoError(t, err)
	require.Len(t, sender.messages, 2)
}

func TestNotifyTicketsFound_VoiceFailureIsContained(t *testing.T) {
	sender := &fakeSender{}
	caller := &fakeCaller{initialized: true, err: errors.New("caller service 500")}
	d := NewNotificationDispatcher(sender, caller, "@UKZ_Notify_Bot", "Europe/Kiev", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(4, "2026-01-04"), foundResult())

	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
}

func TestNotifyTicketsFound_PrimaryFailurePropagates(t *testing.T) {
	sender := &fakeSender{err: errors.New("bad request")}
	caller := &fakeCaller{initialized: true}
	d := NewNotificationDispatcher(sender, caller, "@UKZ_Notify_Bot", "Europe/Kiev", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(5, "2026-01-04"), foundResult())

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad request"))
	assert.Empty(t, caller.calledIDs)
}

func TestNotifyTicketsFound_UnknownTimezoneFallsBack(t *testing.T) {
	sender := &fakeSender{}
	d := NewNotificationDispatcher(sender, nil, "@UKZ_Notify_Bot", "Mars/Olympus", logger.NewNop())

	err := d.NotifyTicketsFound(context.Background(), activeRoute(6, "2026-01-04"), foundResult())

	require.NoError(t, err)
}
