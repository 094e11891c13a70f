// Package csvfile provides daily close history from a local CSV file,
// for offline backtests and tests. The expected layout is a header line
// followed by date,close rows with YYYY-MM-DD dates.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/smaquant/smaquant/internal/core"
)

const dateLayout = "2006-01-02"

// CSVFile reads a symbol's history from a single file.
type CSVFile struct {
	path string
}

// New creates a provider backed by the CSV file at path.
func New(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (c *CSVFile) Name() string {
	return "csv"
}

// FetchDailyHistory parses the file and returns rows whose date falls in
// [start, end]. The symbol argument is ignored; the file is the universe.
func (c *CSVFile) FetchDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]core.PricePoint, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, core.WrapError(core.ErrMalformedData, err)
	}
	if len(records) < 2 {
		return nil, core.ErrNoData
	}

	prices := make([]core.PricePoint, 0, len(records)-1)
	for i, rec := range records[1:] { // skip header
		if len(rec) < 2 {
			return nil, core.WrapError(core.ErrMalformedData,
				fmt.Errorf("row %d: expected date,close columns", i+2))
		}
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedData,
				fmt.Errorf("row %d: bad date %q: %w", i+2, rec[0], err))
		}
		close, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedData,
				fmt.Errorf("row %d: bad close %q: %w", i+2, rec[1], err))
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		prices = append(prices, core.PricePoint{Date: date, Close: close})
	}

	if len(prices) == 0 {
		return nil, core.ErrNoData
	}
	return prices, nil
}
