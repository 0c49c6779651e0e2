package update

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/tracker"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func nowDay() time.Time {
	return model.DayOf(time.Now())
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

func monthLabel(month tracker.MonthReport) string {
	return fmt.Sprintf("%s %d", month.Month.String()[:3], month.Year)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
