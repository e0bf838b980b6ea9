package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/library-fees/internal/models"
)

// ErrInvalidDate is wrapped by every DateFormatError
var ErrInvalidDate = errors.New("invalid date")

// ErrContract is wrapped by every ContractError
var ErrContract = errors.New("contract violation")

// LastDate is the latest calendar day any parser or range may produce
var LastDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// DisplayLayout is the rendering used by ReformatDates, e.g. "01 Jan 2001"
const DisplayLayout = "02 Jan 2006"

// DateLayout describes a fixed numeric date pattern made of year, month and
// day fields joined by a single separator.
type DateLayout struct {
	Name  string
	Sep   byte
	Order [3]string
}

var (
	// ISODate is YYYY-MM-DD
	ISODate = DateLayout{Name: "YYYY-MM-DD", Sep: '-', Order: [3]string{"year", "month", "day"}}
	// LedgerDate is MM/DD/YYYY
	LedgerDate = DateLayout{Name: "MM/DD/YYYY", Sep: '/', Order: [3]string{"month", "day", "year"}}
)

// DateFormatError reports a date string that does not match its layout
type DateFormatError struct {
	Input     string
	Layout    string
	Component string // "year", "month", "day" or "layout"
	Err       error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date %q does not match %s: bad %s: %v", e.Input, e.Layout, e.Component, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// ContractError reports an argument outside the accepted domain
type ContractError struct {
	Arg    string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrContract, e.Arg, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

// Parse parses s according to the layout. Month and day accept one or two
// digits, the year exactly four. The result is midnight UTC.
func (l DateLayout) Parse(s string) (time.Time, error) {
	parts := strings.Split(s, string(l.Sep))
	if len(parts) != 3 {
		return time.Time{}, l.fail(s, "layout", fmt.Errorf("%w: expected 3 fields separated by %q, got %d", ErrInvalidDate, l.Sep, len(parts)))
	}

	fields := make(map[string]string, 3)
	for i, name := range l.Order {
		fields[name] = parts[i]
	}

	year, err := parseField(fields["year"], 4, 4)
	if err != nil {
		return time.Time{}, l.fail(s, "year", err)
	}
	if year < 1 {
		return time.Time{}, l.fail(s, "year", fmt.Errorf("%w: year %d out of range 1-9999", ErrInvalidDate, year))
	}
	month, err := parseField(fields["month"], 1, 2)
	if err != nil {
		return time.Time{}, l.fail(s, "month", err)
	}
	if month < 1 || month > 12 {
		return time.Time{}, l.fail(s, "month", fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidDate, month))
	}
	day, err := parseField(fields["day"], 1, 2)
	if err != nil {
		return time.Time{}, l.fail(s, "day", err)
	}
	if last := DaysIn(time.Month(month), year); day < 1 || day > last {
		return time.Time{}, l.fail(s, "day", fmt.Errorf("%w: day %d out of range 1-%d", ErrInvalidDate, day, last))
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func (l DateLayout) fail(input, component string, err error) error {
	return &DateFormatError{Input: input, Layout: l.Name, Component: component, Err: err}
}

func parseField(s string, minDigits, maxDigits int) (int, error) {
	if len(s) < minDigits || len(s) > maxDigits {
		return 0, fmt.Errorf("%w: %q must have %d-%d digits", ErrInvalidDate, s, minDigits, maxDigits)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidDate, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return n, nil
}

// DaysIn returns the number of days in the given month of year
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole calendar days from a to b.
// time.Duration saturates after ~292 years, so day numbers are compared instead.
func DaysBetween(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

func dayNumber(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// ReformatDates converts YYYY-MM-DD strings to "DD Mon YYYY", preserving order
func ReformatDates(dates []string) ([]string, error) {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		t, err := ISODate.Parse(d)
		if err != nil {
			return nil, err
		}
		out = append(out, t.Format(DisplayLayout))
	}
	return out, nil
}

// DateRange returns n consecutive days starting at start (YYYY-MM-DD)
func DateRange(start string, n int) ([]time.Time, error) {
	if n < 0 {
		return nil, &ContractError{Arg: "n", Reason: fmt.Sprintf("must be non-negative, got %d", n)}
	}
	first, err := ISODate.Parse(start)
	if err != nil {
		return nil, err
	}
	if limit := DaysBetween(first, LastDate) + 1; n > limit {
		return nil, &ContractError{Arg: "n", Reason: fmt.Sprintf("range from %s would pass %s, at most %d days allowed", start, LastDate.Format(time.DateOnly), limit)}
	}

	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, first.AddDate(0, 0, i))
	}
	return dates, nil
}

// AddDateRange pairs each value with a day, starting at start
func AddDateRange[T any](values []T, start string) ([]models.DateValuePair[T], error) {
	dates, err := DateRange(start, len(values))
	if err != nil {
		return nil, err
	}

	pairs := make([]models.DateValuePair[T], len(values))
	for i, v := range values {
		pairs[i] = models.DateValuePair[T]{Date: dates[i], Value: v}
	}
	return pairs, nil
}
