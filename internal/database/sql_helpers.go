package database

import (
	"database/sql"
	"time"
)

const dayLayout = "2006-01-02"

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// timePtr converts a scanned nullable time to a pointer; NULL becomes nil.
func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
