package services

import "time"

const DateKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// WeekRangeContaining returns the Monday-start week holding instant's
// calendar date in location, and its Sunday end (start + 6 days). Output
// depends only on the calendar date, never the time of day.
func WeekRangeContaining(instant time.Time, location *time.Location) (time.Time, time.Time) {
	day := DateAtLocation(instant, location)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	weekStart := day.AddDate(0, 0, -offset)
	return weekStart, weekStart.AddDate(0, 0, 6)
}

func DateKey(value time.Time) string {
	return value.Format(DateKeyLayout)
}
