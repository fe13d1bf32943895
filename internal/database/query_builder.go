package database

import (
	"fmt"
	"strings"
)

const sessionColumns = "id, requested_minutes, started_at, ended_at, outcome, remaining_seconds"

type SessionQuery struct {
	filters []string
	args    []interface{}
	orderBy string
	limit   int
}

func NewSessionQuery() *SessionQuery {
	return &SessionQuery{}
}

func (q *SessionQuery) Where(filter string, args ...interface{}) *SessionQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *SessionQuery) WhereDay(day string) *SessionQuery {
	return q.Where("day = ?", day)
}

func (q *SessionQuery) WhereOpen() *SessionQuery {
	return q.Where("ended_at IS NULL")
}

func (q *SessionQuery) OrderBy(orderBy string) *SessionQuery {
	q.orderBy = orderBy
	return q
}

func (q *SessionQuery) Limit(limit int) *SessionQuery {
	q.limit = limit
	return q
}

func (q *SessionQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM sessions", sessionColumns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
