package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	for _, raw := range []string{"day", "DAY", " Month ", "year"} {
		if _, err := ParseInterval(raw); err != nil {
			t.Fatalf("ParseInterval(%q): %v", raw, err)
		}
	}

	_, err := ParseInterval("week")
	if err == nil {
		t.Fatalf("expected an error for week")
	}
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestBucketStart(t *testing.T) {
	ts := time.Date(2024, time.February, 29, 17, 45, 12, 500, time.UTC)

	tests := []struct {
		interval StatisticsInterval
		want     time.Time
	}{
		{IntervalDay, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{IntervalMonth, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalYear, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			got := BucketStart(ts, tt.interval)
			if !tt.want.Equal(got) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if again := BucketStart(got, tt.interval); !got.Equal(again) {
				t.Fatalf("bucket start not idempotent: %s then %s", got, again)
			}
		})
	}
}

func TestBucketStartKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, time.March, 1, 1, 0, 0, 0, loc)

	got := BucketStart(ts, IntervalMonth)
	if got.Location() != loc {
		t.Fatalf("expected location %s, got %s", loc, got.Location())
	}
	if got.Month() != time.March {
		t.Fatalf("expected March, got %s", got.Month())
	}
}

func TestIntervalNext(t *testing.T) {
	jan1 := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	steps := map[StatisticsInterval]time.Time{
		IntervalDay:   time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
		IntervalMonth: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		IntervalYear:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for interval, want := range steps {
		if got := interval.Next(jan1); !got.Equal(want) {
			t.Fatalf("%s step: expected %s, got %s", interval, want, got)
		}
	}

	// month steps vary in length
	feb := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	if d := IntervalMonth.Next(feb).Sub(feb); d != 28*24*time.Hour {
		t.Fatalf("expected a 28 day February, got %s", d)
	}
}

func TestBucketsAreMonotonic(t *testing.T) {
	start := time.Date(2023, time.December, 30, 12, 0, 0, 0, time.UTC)
	for _, interval := range []StatisticsInterval{IntervalDay, IntervalMonth, IntervalYear} {
		prev := BucketStart(start, interval)
		for i := 1; i < 48; i++ {
			cur := BucketStart(start.Add(time.Duration(i)*6*time.Hour), interval)
			if cur.Before(prev) {
				t.Fatalf("%s bucket went backwards at step %d: %s before %s", interval, i, cur, prev)
			}
			prev = cur
		}
	}
}
