package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format the booking API expects
const DateLayout = "2006-01-02"

// GenerateDates produces a consecutive run of ISO dates starting at startDate
func GenerateDates(startDate string, days int) ([]string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates, nil
}

// FormatPrice renders a minor-unit price as whole hryvnias
func FormatPrice(minorUnits int64) string {
	return fmt.Sprintf("%.0f грн", float64(minorUnits)/100)
}

// FormatClockTime renders an epoch-second timestamp as HH:MM in the given location
func FormatClockTime(epochSeconds int64, loc *time.Location) string {
	return time.Unix(epochSeconds, 0).In(loc).Format("15:04")
}
