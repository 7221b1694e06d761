// Package temporal derives calendar buckets and day-grain duration fields
// from order timestamps. All functions are pure; eligibility filtering
// (e.g. delivered orders only) is the caller's responsibility.
package temporal

import (
	"fmt"
	"time"
)

// Year returns the calendar year of t.
func Year(t time.Time) int {
	return t.Year()
}

// YearMonth formats t as "2006-01".
func YearMonth(t time.Time) string {
	return t.Format("2006-01")
}

// YearQuarter formats t as "2006-Q1".
func YearQuarter(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// WeekdayName returns the English weekday name ("Monday", ...).
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// MonthStart returns the first day of the month given a "2006-01" bucket.
func MonthStart(yearMonth string) (time.Time, error) {
	return time.Parse("2006-01", yearMonth)
}

// DaysBetween returns the whole-day component of end minus start. The fractional
// day is truncated, never rounded: an order delivered 5 days and 23 hours
// after purchase counts as 5 days.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// Delivery labels for the on-time indicator.
const (
	OnTime = "On Time"
	Late   = "Late"
)

// DeliveryMetrics holds the duration fields derived from a delivered
// order's timestamps. Nil fields mean the order was not eligible.
type DeliveryMetrics struct {
	ActualDays    *int
	EstimatedDays *int
	DelayDays     *int
	OnTimeLabel   *string
}

// DeriveDelivery computes delivery durations for a single order. It returns
// all-nil metrics unless the order is delivered and carries the purchase,
// actual-delivery and estimated-delivery timestamps: a non-delivered order
// has an unknown on-time status, which is distinct from late.
func DeriveDelivery(delivered bool, purchase, deliveredAt, estimatedAt *time.Time) DeliveryMetrics {
	var m DeliveryMetrics
	if !delivered || purchase == nil || deliveredAt == nil || estimatedAt == nil {
		return m
	}

	actual := DaysBetween(*purchase, *deliveredAt)
	estimated := DaysBetween(*purchase, *estimatedAt)
	delay := actual - estimated

	label := Late
	if delay <= 0 {
		label = OnTime
	}

	m.ActualDays = &actual
	m.EstimatedDays = &estimated
	m.DelayDays = &delay
	m.OnTimeLabel = &label
	return m
}
