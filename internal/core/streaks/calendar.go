package streaks

import (
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const monthLayout = "2006-01"

// Calendar reports, for every day of month, how many habits were completed.
func Calendar(habits []*domain.Habit, month time.Time) domain.CalendarMonth {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)

	sets := make([]daySet, 0, len(habits))
	for _, h := range habits {
		if h != nil {
			sets = append(sets, newDaySet(h.CompletedDates, loc))
		}
	}

	cal := domain.CalendarMonth{Month: first.Format(monthLayout)}
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		completed := 0
		for _, s := range sets {
			if s.has(day) {
				completed++
			}
		}
		cal.Days = append(cal.Days, domain.CalendarDay{
			Date:      domain.FormatDay(day),
			Completed: completed,
			Total:     len(sets),
			Level:     DayLevel(completed, len(sets)),
		})
	}
	return cal
}

func DayLevel(completed, total int) string {
	switch {
	case completed <= 0 || total <= 0:
		return domain.DayLevelNone
	case completed >= total:
		return domain.DayLevelFull
	case completed*2 > total:
		return domain.DayLevelMajority
	default:
		return domain.DayLevelPartial
	}
}
