package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// LoadCSV reads a CSV document with a header row into a Dataset.
// Ragged rows are rejected by the reader, header-only input by New.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	rows := make([][]string, 0)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV row")
		}
		rows = append(rows, rec)
	}

	return New(header, rows)
}

// LoadCSVFile reads a CSV file from disk into a Dataset.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file: %s", path)
	}
	defer f.Close()

	ds, err := LoadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV file: %s", path)
	}
	return ds, nil
}
