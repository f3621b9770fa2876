package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/utils"
)

// Alert rendering caps: more matches than this are summarized, not listed
const (
	maxDatesShown    = 5
	maxDetailDates   = 3
	maxOffersPerDate = 2
)

// RenderTicketAlert composes the HTML found-tickets message for one route
func RenderTicketAlert(route *entity.ActiveRoute, result *entity.AvailabilityResult, loc *time.Location) string {
	shown := result.DatesWithTickets
	if len(shown) > maxDatesShown {
		shown = shown[:maxDatesShown]
	}
	datesStr := strings.Join(shown, ", ")
	if overflow := len(result.DatesWithTickets) - maxDatesShown; overflow > 0 {
		datesStr += fmt.Sprintf(" ... (+%d)", overflow)
	}

	var b strings.Builder
	b.WriteString("<b>🎉 Знайдено квитки!</b>\n\n")
	b.WriteString(fmt.Sprintf("🚉 Маршрут: <b>%s → %s</b>\n", route.StationFromName, route.StationToName))
	b.WriteString(fmt.Sprintf("📅 Дати: <b>%s</b>\n\n", datesStr))
	b.WriteString("<blockquote>Деталі:\n")

	detailDates := result.DatesWithTickets
	if len(detailDates) > maxDetailDates {
		detailDates = detailDates[:maxDetailDates]
	}
	for _, date := range detailDates {
		b.WriteString(fmt.Sprintf("\n📆 %s:\n", date))

		offers := result.Details[date]
		if len(offers) > maxOffersPerDate {
			offers = offers[:maxOffersPerDate]
		}
		for _, offer := range offers {
			b.WriteString(fmt.Sprintf("  \n🚂 Поїзд %s\n", offer.TrainNumber))
			b.WriteString(fmt.Sprintf("  ⏰ %s → %s\n",
				utils.FormatClockTime(offer.DepartAt, loc),
				utils.FormatClockTime(offer.ArriveAt, loc)))
			b.WriteString(fmt.Sprintf("  🎫 %s: %d місць, %s\n",
				offer.WagonName, offer.FreeSeats, utils.FormatPrice(offer.Price)))
		}
	}

	b.WriteString("</blockquote>\n")
	b.WriteString("\n💬 Здійснюється дзвінок...")

	return b.String()
}

// RenderCallFallback composes the plain reminder sent when the voice
// channel is unavailable
func RenderCallFallback(notificationAccount string) string {
	return fmt.Sprintf("⚠️ Щоб отримувати голосові дзвінки, напишіть сервісному аккаунту %s", notificationAccount)
}
