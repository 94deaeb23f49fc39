package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dataset is an immutable rectangular table: named columns over
// row-major string cells. Cells are kept as strings until a consumer
// asks for a typed view.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// SchemaError reports required columns missing from a dataset.
// It is fatal: no partial audit is attempted when one is returned.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// New builds a Dataset from a header and rows. Every row must have
// exactly one cell per column and at least one row is required.
func New(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, errors.New("dataset requires at least one column")
	}
	if len(rows) == 0 {
		return nil, errors.New("dataset requires at least one row")
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, errors.Errorf("duplicate column: %s", c)
		}
		index[c] = i
	}

	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, errors.Errorf("row %d has %d cells, expected %d", i, len(r), len(columns))
		}
	}

	return &Dataset{columns: columns, index: index, rows: rows}, nil
}

// Size returns the number of rows.
func (d *Dataset) Size() int {
	return len(d.rows)
}

// Columns returns the column names in declaration order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ValidateColumns checks that every named column exists, collecting
// all missing names into a single SchemaError.
func (d *Dataset) ValidateColumns(names ...string) error {
	var missing []string
	for _, n := range names {
		if !d.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Strings returns the raw values of a column, one per row.
// The column must exist (validate first).
func (d *Dataset) Strings(name string) []string {
	i, ok := d.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}
	return out
}

// Floats parses a column as float64 values. Labels are expected to be
// 0/1 and predictions either 0/1 or real scores in [0,1]; any cell
// that does not parse is a fatal input error.
func (d *Dataset) Floats(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &SchemaError{Missing: []string{name}}
	}
	out := make([]float64, len(d.rows))
	for r, row := range d.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s row %d: not numeric", name, r)
		}
		out[r] = v
	}
	return out, nil
}
