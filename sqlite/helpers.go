package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/texmeta"
)

// now returns the current time at the precision stored in the database.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatRFC3339 formats a timestamp column value.
func formatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseRFC3339 parses a timestamp column value, naming the column on failure.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendFilter appends the WHERE, ORDER BY and pagination clauses for
// filter to a query selecting from documents.
func appendFilter(query *strings.Builder, args *[]any, filter texmeta.DocumentFilter) {
	var conds []string
	if filter.Handle != nil {
		conds = append(conds, "handle = ?")
		*args = append(*args, *filter.Handle)
	}
	if filter.Series != nil {
		conds = append(conds, "series = ?")
		*args = append(*args, *filter.Series)
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	query.WriteString(" ORDER BY handle ASC")
	appendPagination(query, args, filter.Limit, filter.Offset)
}

// appendPagination appends LIMIT and OFFSET clauses when they are set.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
