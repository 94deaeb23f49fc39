package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Table names are interpolated into the query (identifiers cannot be
// bound), so they are restricted to plain identifiers.
var tableNameRegEx = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// LoadTable reads an entire SQLite table into a Dataset. All values
// are rendered to strings; typed views are derived later the same way
// as for CSV input.
func LoadTable(ctx context.Context, dbPath, table string) (*Dataset, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath not specified")
	}
	if !tableNameRegEx.MatchString(table) {
		return nil, errors.Errorf("invalid table name: %s", table)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", dbPath)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table)) //nolint:gosec // table name validated above
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query table: %s", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read column names")
	}

	data := make([][]string, 0)
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = v.String
		}
		data = append(data, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}

	ds, err := New(cols, data)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s is not a usable dataset", table)
	}
	return ds, nil
}
