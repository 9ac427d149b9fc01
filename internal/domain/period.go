package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidInterval = errors.New("invalid statistics interval")

type StatisticsInterval string

const (
	IntervalDay   StatisticsInterval = "DAY"
	IntervalMonth StatisticsInterval = "MONTH"
	IntervalYear  StatisticsInterval = "YEAR"
)

func ParseInterval(raw string) (StatisticsInterval, error) {
	interval := StatisticsInterval(strings.ToUpper(strings.TrimSpace(raw)))
	switch interval {
	case IntervalDay, IntervalMonth, IntervalYear:
		return interval, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInterval, raw)
}

// BucketStart truncates t to the start of the calendar period containing it, in t's location.
func BucketStart(t time.Time, interval StatisticsInterval) time.Time {
	year, month, day := t.Date()
	switch interval {
	case IntervalYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	case IntervalMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	}
}

// Next steps one calendar unit forward. Month and year steps vary in length.
func (i StatisticsInterval) Next(t time.Time) time.Time {
	switch i {
	case IntervalYear:
		return t.AddDate(1, 0, 0)
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
