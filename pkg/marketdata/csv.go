// Package marketdata loads OHLCV bar series from external sources. The
// pipeline itself never fetches data; it consumes the validated series
// these loaders produce and fails fast on invariant violations.
package marketdata

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

// LoadCSV reads a bar series from a CSV file with a
// time,open,high,low,close,volume header. Timestamps are RFC 3339.
func LoadCSV(path string) (types.BarSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.BarSeries{}, errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses a bar series from CSV content.
func ReadCSV(r io.Reader) (types.BarSeries, error) {
	var bars []types.Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return types.BarSeries{}, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to parse CSV bars", err)
	}

	return types.NewBarSeries(bars)
}
