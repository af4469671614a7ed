// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for fixed-entry dueness checking.
// Each frequency type (daily, weekly, monthly, yearly) has its own strategy
// that encapsulates the logic for determining if an entry is due.

package services

import (
	"fmt"
	"time"

	"gastobot/internal/core"
)

// DuenessChecker is the strategy interface for checking if a fixed entry is
// due for materialization into a transaction.
type DuenessChecker interface {
	// IsDue returns true if the entry should be processed, given the last
	// application time and the current time.
	IsDue(lastApplied, now, startDate time.Time) bool
}

// DailyChecker implements DuenessChecker for daily fixed entries.
type DailyChecker struct{}

// IsDue returns true if the entry was last applied before today.
func (DailyChecker) IsDue(lastApplied, now, _ time.Time) bool {
	if lastApplied.IsZero() {
		return true
	}
	return lastApplied.Format(core.DateLayout) != now.Format(core.DateLayout)
}

// WeeklyChecker implements DuenessChecker for weekly fixed entries.
type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last application.
func (WeeklyChecker) IsDue(lastApplied, now, _ time.Time) bool {
	if lastApplied.IsZero() {
		return true
	}
	return now.Sub(lastApplied).Hours()/24 >= 7
}

// MonthlyChecker implements DuenessChecker for monthly fixed entries.
type MonthlyChecker struct{}

// IsDue returns true if we're in a new month and have reached the target day.
func (MonthlyChecker) IsDue(lastApplied, now, startDate time.Time) bool {
	if lastApplied.IsZero() {
		return true
	}

	// Already applied this month?
	if lastApplied.Year() == now.Year() && lastApplied.Month() == now.Month() {
		return false
	}

	return now.Day() >= clampToMonth(startDate.Day(), now)
}

// YearlyChecker implements DuenessChecker for yearly fixed entries.
type YearlyChecker struct{}

// IsDue returns true if we're in a new year and have reached the target month
// and day.
func (YearlyChecker) IsDue(lastApplied, now, startDate time.Time) bool {
	if lastApplied.IsZero() {
		return true
	}

	if lastApplied.Year() == now.Year() {
		return false
	}

	if now.Month() < startDate.Month() {
		return false
	}
	if now.Month() == startDate.Month() {
		return now.Day() >= clampToMonth(startDate.Day(), now)
	}
	return true
}

// clampToMonth pulls a target day-of-month back to the last day of now's
// month when the month is too short (e.g. the 31st in February).
func clampToMonth(targetDay int, now time.Time) int {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if targetDay > lastDay {
		return lastDay
	}
	return targetDay
}

// duenessStrategies maps frequencies to their corresponding checkers.
var duenessStrategies = map[core.Frequency]DuenessChecker{
	core.Daily:   DailyChecker{},
	core.Weekly:  WeeklyChecker{},
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// GetDuenessChecker returns the appropriate dueness checker for a frequency.
// Returns an error if the frequency is not supported.
func GetDuenessChecker(frequency core.Frequency) (DuenessChecker, error) {
	checker, ok := duenessStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return checker, nil
}
