package entity

import (
	"strconv"
	"strings"
	"time"
)

// Weekday is the ISO day of week, Monday = 1 through Sunday = 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return ""
	}
	return weekdayNames[d]
}

// ParseWeekday accepts an English day name (any case) or its number "1".."7".
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		return d, d.IsValid()
	}
	for i := Monday; i <= Sunday; i++ {
		if strings.EqualFold(weekdayNames[i], s) {
			return i, true
		}
	}
	return 0, false
}

// WeekdayOf maps a time to its ISO weekday.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}
