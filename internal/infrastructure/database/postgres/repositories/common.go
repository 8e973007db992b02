package repositories

import (
	"context"
	"database/sql"
	"math"
)

// queryExecutor abstracts sql.DB and sql.Tx
type queryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// ChEMBL stores phases and flags as NUMERIC/SMALLINT; the helpers below map
// the nullable scan targets onto the pointer fields of the domain records.

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// roundedIntPtr accepts fractional phases such as 0.5 and rounds down.
func roundedIntPtr(v sql.NullFloat64) *int {
	if !v.Valid {
		return nil
	}
	i := int(math.Floor(v.Float64))
	return &i
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// flagPtr treats -1 as unknown, as ChEMBL does for first_in_class.
func flagPtr(v sql.NullInt64) *bool {
	if !v.Valid || v.Int64 < 0 {
		return nil
	}
	b := v.Int64 == 1
	return &b
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

//Personal.AI order the ending
