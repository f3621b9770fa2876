package templates

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() *entity.ActiveRoute {
	return &entity.ActiveRoute{
		Route: entity.Route{
			ID:              1,
			StationFromName: "Шепетівка",
			StationToName:   "Полонне",
		},
		TelegramID: 42,
		Username:   "rider",
	}
}

func resultWith(dateCount, offersPerDate int) *entity.AvailabilityResult {
	result := &entity.AvailabilityResult{
		HasTickets: true,
		Details:    map[string][]entity.TripOffer{},
	}
	for d := 0; d < dateCount; d++ {
		date := fmt.Sprintf("2026-01-%02d", d+4)
		result.DatesWithTickets = append(result.DatesWithTickets, date)
		for o := 0; o < offersPerDate; o++ {
			result.Details[date] = append(result.Details[date], entity.TripOffer{
				TrainNumber: fmt.Sprintf("74%dК", o),
				DepartAt:    1767513720,
				ArriveAt:    1767527100,
				WagonType:   "К",
				WagonName:   "Купе",
				FreeSeats:   3,
				Price:       52000,
			})
		}
	}
	return result
}

func TestRenderTicketAlert_BasicContent(t *testing.T) {
	text := RenderTicketAlert(testRoute(), resultWith(1, 1), time.UTC)

	assert.Contains(t, text, "Знайдено квитки")
	assert.Contains(t, text, "Шепетівка → Полонне")
	assert.Contains(t, text, "2026-01-04")
	assert.Contains(t, text, "Поїзд 740К")
	assert.Contains(t, text, "Купе: 3 місць, 520 грн")
	// Depart/arrive clock times rendered in the requested zone
	assert.Contains(t, text, time.Unix(1767513720, 0).UTC().Format("15:04"))
}

func TestRenderTicketAlert_DateOverflowSummarized(t *testing.T) {
	text := RenderTicketAlert(testRoute(), resultWith(7, 1), time.UTC)

	assert.Contains(t, text, "(+2)")
	// Only the first 5 dates are listed in the header line
	assert.NotContains(t, text, "2026-01-09, 2026-01-10")
}

func TestRenderTicketAlert_DetailCaps(t *testing.T) {
	text := RenderTicketAlert(testRoute(), resultWith(7, 3), time.UTC)

	// At most 3 dates of details, at most 2 offers each
	assert.Equal(t, 3, strings.Count(text, "📆"))
	assert.Equal(t, 6, strings.Count(text, "🚂"))
}

func TestRenderTicketAlert_NoOverflowMarkerWhenFewDates(t *testing.T) {
	text := RenderTicketAlert(testRoute(), resultWith(2, 1), time.UTC)

	assert.NotContains(t, text, "(+")
}

func TestRenderCallFallback(t *testing.T) {
	text := RenderCallFallback("@UKZ_Notify_Bot")

	require.Contains(t, text, "@UKZ_Notify_Bot")
	assert.Contains(t, text, "голосові дзвінки")
}
