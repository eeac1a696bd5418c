// Package validate turns raw console input into typed, constrained values.
//
// Every parser returns the parsed value or one of the sentinel errors below, so
// callers can report the problem and ask again.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"

	"StockMonitor/internal/calendar"
	"StockMonitor/internal/model"
)

var (
	ErrDateFormat       = errors.New("date must be in format YYYY-MM-DD")
	ErrDateInvalid      = errors.New("date is not a valid calendar date")
	ErrRangeOrder       = errors.New("first date can not exceed second date")
	ErrFutureDate       = errors.New("date can not be in the future")
	ErrNotTradingDay    = errors.New("must be a valid trading day")
	ErrHoliday          = errors.New("date can not be a market holiday")
	ErrMultiplierFormat = errors.New("multiplier must be an integer")
	ErrMultiplierRange  = errors.New("multiplier must be greater than 0")
	ErrTimespan         = fmt.Errorf("enter a valid timespan: (%s)", timespanList())
	ErrTicker           = errors.New("ticker must be a single non-empty symbol")
	ErrAmountFormat     = errors.New("please enter a number")
	ErrAmountRange      = errors.New("investment must be greater than 0")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MatchDate reports whether s has the YYYY-MM-DD shape. It does not check
// that the month or day exist.
func MatchDate(s string) bool {
	return datePattern.MatchString(s)
}

// ParseDate checks the pattern, then the calendar date itself.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !MatchDate(s) {
		return time.Time{}, ErrDateFormat
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	return d, nil
}

// DateRange parses both endpoints and requires from <= to.
func DateRange(from, to string) (time.Time, time.Time, error) {
	f, err := ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
	}
	t, err := ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
	}
	if f.After(t) {
		return time.Time{}, time.Time{}, ErrRangeOrder
	}
	return f, t, nil
}

// OpenCloseDate parses s and rejects dates strictly after today's date.
func OpenCloseDate(s string, today time.Time) (time.Time, error) {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if d.After(dayOf(today)) {
		return time.Time{}, ErrFutureDate
	}
	return d, nil
}

// PastTradingDate applies the growth calculator's three checks: pattern,
// trading weekday, and not a listed holiday.
func PastTradingDate(s string, cal *calendar.Calendar) (time.Time, error) {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if !cal.IsTradingWeekday(d) {
		return time.Time{}, ErrNotTradingDay
	}
	if cal.IsHoliday(d) {
		return time.Time{}, ErrHoliday
	}
	return d, nil
}

// ParseMultiplier parses the bucket multiplier. Empty input means 1.
func ParseMultiplier(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMultiplierFormat
	}
	if n <= 0 {
		return 0, ErrMultiplierRange
	}
	return n, nil
}

// ParseTimespan matches s case-insensitively against the supported timespans.
func ParseTimespan(s string) (models.Timespan, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, ts := range model.Timespans {
		if string(ts) == s {
			return ts, nil
		}
	}
	return "", ErrTimespan
}

// ParseTicker upper-cases and trims a ticker symbol.
func ParseTicker(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || strings.ContainsAny(s, " \t") {
		return "", ErrTicker
	}
	return s, nil
}

// ParseAmount parses a strictly positive investment amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	amt, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, ErrAmountFormat
	}
	if !amt.IsPositive() {
		return decimal.Zero, ErrAmountRange
	}
	return amt, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timespanList() string {
	names := make([]string, len(model.Timespans))
	for i, ts := range model.Timespans {
		names[i] = string(ts)
	}
	return strings.Join(names, ", ")
}
