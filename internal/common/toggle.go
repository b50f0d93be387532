package common

import (
	"context"
	"database/sql"
)

// Toggle flips the presence of a join-table row. deleteQuery and insertQuery take the same
// arguments; insertQuery must use ON CONFLICT DO NOTHING so concurrent duplicates collapse onto
// the primary key. It reports whether the row exists afterwards. A foreign key violation on insert
// means one of the referenced records is missing and yields ErrRecordNotFound.
func Toggle(ctx context.Context, db *sql.DB, deleteQuery, insertQuery string, args ...any) (bool, error) {
	res, err := db.ExecContext(ctx, deleteQuery, args...)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if rows > 0 {
		return false, nil
	}

	_, err = db.ExecContext(ctx, insertQuery, args...)
	if err != nil {
		switch {
		case ForeignKeyError(err, ""):
			return false, ErrRecordNotFound
		default:
			return false, err
		}
	}

	return true, nil
}
