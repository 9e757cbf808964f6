package repository

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/workhours/internal/domain"
)

// storageLayout keeps stored timestamps fixed-width so text comparison in
// SQL orders them chronologically.
const storageLayout = "2006-01-02T15:04:05Z"

// ssq builds statements with SQLite's "?" placeholders.
var ssq = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// formatTime converts t to the UTC second-precision storage form.
func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(storageLayout)
}

// parseTime reads a stored timestamp. Fractional seconds are accepted but
// formatTime never writes them.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL or empty.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableReason maps a stored logout_type to a LogoutReason, normalizing
// legacy free-form values.
func nullableReason(s sql.NullString) *domain.LogoutReason {
	if !s.Valid {
		return nil
	}
	r := domain.ParseLogoutReason(s.String)
	return &r
}

func nullableReasonToValue(r *domain.LogoutReason) interface{} {
	if r == nil {
		return nil
	}
	return string(*r)
}

func buildError(what string, err error) error {
	return fmt.Errorf("building %s query: %w", what, err)
}
