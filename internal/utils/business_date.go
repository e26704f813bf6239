package utils

import (
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/constants"
)

// BusinessDate maps an instant to the operating date it belongs to. Hours
// before the cutoff count toward the previous calendar day, so late-night
// closing work stays on the shift that started it.
func BusinessDate(now time.Time, cutoffHour int) string {
	if now.Hour() < cutoffHour {
		now = now.AddDate(0, 0, -1)
	}
	return now.Format(constants.DateLayout)
}

// BusinessDateStart returns midnight (local to loc) of a business date
// string. Used to anchor period windows when judging lateness.
func BusinessDateStart(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, date, loc)
}
