// Package calendar decides whether a date is a US equity trading day.
//
// Trading weekdays are expressed as a standard cron spec so they can be changed
// from config. Holidays are literal month-day data applied to the queried year;
// the default list is the observed dates of a single year and is not recomputed
// for other years.
package calendar

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTradingDays fires at midnight Monday through Friday.
const DefaultTradingDays = "0 0 * * 1-5"

// DefaultHolidays are the eleven market holidays as MM-DD.
var DefaultHolidays = []string{
	"01-01", // New Year's Day
	"01-15", // Martin Luther King Jr. Day
	"02-20", // Presidents' Day
	"04-07", // Good Friday
	"05-29", // Memorial Day
	"06-19", // Juneteenth
	"07-04", // Independence Day
	"09-04", // Labor Day
	"11-23", // Thanksgiving
	"11-24", // day after Thanksgiving
	"12-25", // Christmas
}

// Calendar answers trading-day questions for calendar dates.
type Calendar struct {
	schedule cron.Schedule
	holidays map[string]struct{}
}

// New builds a Calendar from a cron spec and a list of MM-DD holidays.
func New(tradingDays string, holidays []string) (*Calendar, error) {
	sched, err := cron.ParseStandard(tradingDays)
	if err != nil {
		return nil, fmt.Errorf("parse trading days %q: %w", tradingDays, err)
	}
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		if _, err := time.Parse("01-02", h); err != nil {
			return nil, fmt.Errorf("holiday %q must be MM-DD", h)
		}
		set[h] = struct{}{}
	}
	return &Calendar{schedule: sched, holidays: set}, nil
}

// Default returns the calendar with weekday trading and the built-in holiday list.
func Default() *Calendar {
	c, err := New(DefaultTradingDays, DefaultHolidays)
	if err != nil {
		panic(err)
	}
	return c
}

// IsTradingWeekday reports whether the schedule fires at d's midnight.
func (c *Calendar) IsTradingWeekday(d time.Time) bool {
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return c.schedule.Next(midnight.Add(-time.Second)).Equal(midnight)
}

// IsHoliday reports whether d's month and day appear in the holiday list.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[d.Format("01-02")]
	return ok
}

// IsTradingDay combines the weekday and holiday checks.
func (c *Calendar) IsTradingDay(d time.Time) bool {
	return c.IsTradingWeekday(d) && !c.IsHoliday(d)
}
