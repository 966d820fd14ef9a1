package marketdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

type CSVTestSuite struct {
	suite.Suite
}

func TestCSVTestSuite(t *testing.T) {
	suite.Run(t, new(CSVTestSuite))
}

const validCSV = `time,open,high,low,close,volume
2024-01-01T00:00:00Z,100,102,99,101,1000
2024-01-02T00:00:00Z,101,103,100,102,1200
2024-01-03T00:00:00Z,102,104,101,103,900
`

func (s *CSVTestSuite) TestLoadCSV() {
	path := filepath.Join(s.T().TempDir(), "bars.csv")
	s.Require().NoError(os.WriteFile(path, []byte(validCSV), 0o600))

	series, err := LoadCSV(path)

	s.Require().NoError(err)
	s.Equal(3, series.Len())
	s.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.At(1).Time)
	s.InDelta(103.0, series.Last().Close, 1e-12)
	s.InDelta(900.0, series.Last().Volume, 1e-12)
}

func (s *CSVTestSuite) TestMissingFile() {
	_, err := LoadCSV(filepath.Join(s.T().TempDir(), "nope.csv"))

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeDataSourceFailed))
}

func (s *CSVTestSuite) TestMalformedContent() {
	_, err := ReadCSV(strings.NewReader("time,open\nnot-a-time,xyz\n"))

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeDataParseFailed))
}

func (s *CSVTestSuite) TestInvariantViolationsFailFast() {
	outOfOrder := `time,open,high,low,close,volume
2024-01-02T00:00:00Z,100,102,99,101,1000
2024-01-01T00:00:00Z,101,103,100,102,1200
`
	_, err := ReadCSV(strings.NewReader(outOfOrder))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeTimestampOrder))

	badBar := `time,open,high,low,close,volume
2024-01-01T00:00:00Z,100,99,99,101,1000
`
	_, err = ReadCSV(strings.NewReader(badBar))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeBarInvariant))
}
