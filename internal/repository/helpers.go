package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// orderClause resolves a caller-supplied sort against a column whitelist,
// falling back to the given default clause.
func orderClause(allowed map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		return fallback
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

type groupCount struct {
	Key   string
	Count int64
}

// countGrouped collapses a grouped count query into a map.
func countGrouped(query *gorm.DB, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := query.
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

// DayCount is one bucket of the time-bucketed analytics.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// countPerDay buckets created_at by calendar day from `since` onward. The
// window is bounded by the caller; the query runs as a single unit of work.
func countPerDay(query *gorm.DB, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	if err := query.
		Select("to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
