package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayTemplate describes the working day used for bulk slot generation.
type DayTemplate struct {
	OpenTime        string // "08:00"
	CloseTime       string // "20:00"
	DurationMinutes int
}

// Window is a generated [start, end) time range within one day.
type Window struct {
	Date      time.Time
	StartTime string // "15:04"
	EndTime   string // "15:04"
}

// Generate produces back-to-back windows for a date based on the template.
// The last window ends at or before closing time.
func Generate(date time.Time, tmpl DayTemplate) ([]Window, error) {
	if tmpl.DurationMinutes <= 0 {
		tmpl.DurationMinutes = 30
	}

	open, err := parseTimeOnDate(date, tmpl.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closing, err := parseTimeOnDate(date, tmpl.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if !open.Before(closing) {
		return nil, fmt.Errorf("open time %s is not before close time %s", tmpl.OpenTime, tmpl.CloseTime)
	}

	step := time.Duration(tmpl.DurationMinutes) * time.Minute
	var windows []Window
	for cursor := open; !cursor.Add(step).After(closing); cursor = cursor.Add(step) {
		windows = append(windows, Window{
			Date:      midnight(date),
			StartTime: cursor.Format("15:04"),
			EndTime:   cursor.Add(step).Format("15:04"),
		})
	}
	return windows, nil
}

// ValidateWindow checks that both times parse and that the window has
// positive length.
func ValidateWindow(startTime, endTime string) error {
	day := time.Now()
	start, err := parseTimeOnDate(day, startTime)
	if err != nil {
		return fmt.Errorf("parse start time: %w", err)
	}
	end, err := parseTimeOnDate(day, endTime)
	if err != nil {
		return fmt.Errorf("parse end time: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start time %s is not before end time %s", startTime, endTime)
	}
	return nil
}

// Overlaps reports whether two [start, end) ranges on the same day intersect.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseTimeOnDate(date time.Time, timeStr string) (time.Time, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute: %w", err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %s", timeStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
