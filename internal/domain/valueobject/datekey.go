// Package valueobject contains the ledger's business-calendar and money primitives.
package valueobject

import (
	"regexp"
	"time"

	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

// KST is the fixed civil zone every business key is interpreted in (UTC+9, no DST).
var KST = time.FixedZone("KST", 9*60*60)

const (
	// DateKeyLayout is the canonical YYYY-MM-DD business day layout.
	DateKeyLayout = "2006-01-02"
	// TimeKeyLayout is the canonical HH:mm:ss intra-day ordering layout.
	TimeKeyLayout = "15:04:05"
	// MidnightTimeKey is the sort time used for rows without a registered time.
	MidnightTimeKey = "00:00:00"
)

var (
	dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeKeyPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)
)

// ParseDateKey parses a date key into midnight KST of that business day.
func ParseDateKey(key string) (time.Time, error) {
	if !dateKeyPattern.MatchString(key) {
		return time.Time{}, domainerror.ErrInvalidDateKey
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, KST)
	if err != nil {
		return time.Time{}, domainerror.ErrInvalidDateKey
	}
	return t, nil
}

// EnsureDateKey returns key unchanged when it is a valid calendar date key.
func EnsureDateKey(key string) (string, error) {
	if _, err := ParseDateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// EnsureTimeKey returns key unchanged when it matches HH:mm:ss.
func EnsureTimeKey(key string) (string, error) {
	if !timeKeyPattern.MatchString(key) {
		return "", domainerror.ErrInvalidTimeKey
	}
	return key, nil
}

// IsDateKey reports whether key is a valid date key.
func IsDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// IsTimeKey reports whether key is a valid time key.
func IsTimeKey(key string) bool {
	return timeKeyPattern.MatchString(key)
}

// ToDateKey converts an instant to its KST business day.
func ToDateKey(t time.Time) string {
	return t.In(KST).Format(DateKeyLayout)
}

// ToTimeKey converts an instant to its KST wall-clock time key.
func ToTimeKey(t time.Time) string {
	return t.In(KST).Format(TimeKeyLayout)
}

// DateRange is an inclusive pair of date keys.
type DateRange struct {
	StartKey string
	EndKey   string
}

// Contains reports whether key falls inside the range. Comparison is lexicographic.
func (r DateRange) Contains(key string) bool {
	return key >= r.StartKey && key <= r.EndKey
}

// NormalizeRange fills a half-open range to a single day and validates ordering.
// It returns nil when neither bound is given.
func NormalizeRange(startKey, endKey string) (*DateRange, error) {
	if startKey == "" && endKey == "" {
		return nil, nil
	}
	if startKey == "" {
		startKey = endKey
	}
	if endKey == "" {
		endKey = startKey
	}

	if _, err := EnsureDateKey(startKey); err != nil {
		return nil, err
	}
	if _, err := EnsureDateKey(endKey); err != nil {
		return nil, err
	}
	if startKey > endKey {
		return nil, domainerror.ErrInvalidRange
	}

	return &DateRange{StartKey: startKey, EndKey: endKey}, nil
}

// RangePreset names a relative range ending today.
type RangePreset string

const (
	PresetToday      RangePreset = "today"
	PresetOneWeek    RangePreset = "1w"
	PresetOneMonth   RangePreset = "1m"
	PresetThreeMonth RangePreset = "3m"
)

// ParseRangePreset validates a preset name. An empty string is not a preset.
func ParseRangePreset(value string) (RangePreset, error) {
	switch preset := RangePreset(value); preset {
	case PresetToday, PresetOneWeek, PresetOneMonth, PresetThreeMonth:
		return preset, nil
	}
	return "", domainerror.ErrInvalidPreset
}

// RangeByPreset resolves a preset relative to now in KST.
func RangeByPreset(preset RangePreset, now time.Time) DateRange {
	today := startOfDay(now)
	endKey := today.Format(DateKeyLayout)

	var start time.Time
	switch preset {
	case PresetOneWeek:
		start = today.AddDate(0, 0, -6)
	case PresetOneMonth:
		start = addMonthsClamped(today, -1).AddDate(0, 0, 1)
	case PresetThreeMonth:
		start = addMonthsClamped(today, -3).AddDate(0, 0, 1)
	default:
		start = today
	}

	return DateRange{StartKey: start.Format(DateKeyLayout), EndKey: endKey}
}

// MonthRange returns the first and last business day of now's KST month.
func MonthRange(now time.Time) DateRange {
	local := now.In(KST)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, KST)
	last := first.AddDate(0, 1, -1)
	return DateRange{
		StartKey: first.Format(DateKeyLayout),
		EndKey:   last.Format(DateKeyLayout),
	}
}

func startOfDay(t time.Time) time.Time {
	local := t.In(KST)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KST)
}

// addMonthsClamped moves by whole months, clamping the day to the target month's length.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
