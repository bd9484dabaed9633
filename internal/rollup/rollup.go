// Package rollup aggregates raw daily counter rows into the report shapes:
// today's snapshot, the trailing rolling window and calendar week buckets.
// Everything here is pure; fetching rows is the caller's job.
package rollup

import (
	"sort"
	"time"

	"api/internal/models"
)

// Window is a rolling sum over an inclusive date range. Unlike WeekBucket
// it carries no week number: the range is anchored to "today", not to the
// calendar.
type Window struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	LoginCount int64     `json:"login_count"`
	ChatCount  int64     `json:"chat_count"`
}

// WeekBucket is one ISO calendar week of counters. StartDate is the
// week's Monday and EndDate is six days later, regardless of which days
// actually have rows.
type WeekBucket struct {
	Year       int       `json:"year"`
	Week       int       `json:"week"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	LoginCount int64     `json:"login_count"`
	ChatCount  int64     `json:"chat_count"`
}

// Day normalizes a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the week containing t.
func MondayOf(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// TrendStart returns the Monday opening a trend of the given number of
// weeks that ends in the week containing today.
func TrendStart(today time.Time, weeks int) time.Time {
	if weeks < 1 {
		weeks = 1
	}
	return MondayOf(Day(today).AddDate(0, 0, -7*(weeks-1)))
}

// TodaySnapshot returns the row for today, or a zero-valued row when the
// day has seen no writes yet.
func TodaySnapshot(row *models.DailyStat, today time.Time) models.DailyStat {
	if row != nil {
		return *row
	}
	return models.DailyStat{StatDate: Day(today)}
}

// TrailingWindow sums the inclusive [today-6, today] range out of rows.
// Rows outside the range are ignored, missing days contribute zero.
func TrailingWindow(today time.Time, rows []models.DailyStat) Window {
	end := Day(today)
	start := end.AddDate(0, 0, -6)

	window := Window{StartDate: start, EndDate: end}
	for _, row := range rows {
		day := Day(row.StatDate)
		if day.Before(start) || day.After(end) {
			continue
		}
		window.LoginCount += row.LoginCount
		window.ChatCount += row.ChatCount
	}
	return window
}

// WeekBuckets groups rows by ISO week-based (year, week) and sums each
// group. Buckets exist only for weeks that have at least one row, and come
// back sorted ascending by year then week.
func WeekBuckets(rows []models.DailyStat) []WeekBucket {
	type weekKey struct {
		year int
		week int
	}

	buckets := make(map[weekKey]*WeekBucket)
	for _, row := range rows {
		day := Day(row.StatDate)
		year, week := day.ISOWeek()
		key := weekKey{year: year, week: week}

		bucket, ok := buckets[key]
		if !ok {
			start := MondayOf(day)
			bucket = &WeekBucket{
				Year:      year,
				Week:      week,
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 6),
			}
			buckets[key] = bucket
		}

		bucket.LoginCount += row.LoginCount
		bucket.ChatCount += row.ChatCount
	}

	result := make([]WeekBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Week < result[j].Week
	})

	return result
}
