package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDTestSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func linearCloses(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 + float64(i)
	}

	return values
}

func (suite *MACDTestSuite) TestWarmupAlignment() {
	result := MACD(linearCloses(40), 12, 26, 9)

	// MACD line is defined once the slow EMA is, at index 25.
	suite.Equal(25, result.MACD.FirstDefined())

	// Signal line needs 9 MACD values, so it starts 8 entries later.
	suite.Equal(33, result.Signal.FirstDefined())
	suite.Equal(33, result.Histogram.FirstDefined())
}

func (suite *MACDTestSuite) TestHistogramIsDifference() {
	result := MACD(linearCloses(50), 12, 26, 9)

	for i := 33; i < 50; i++ {
		m, okM := result.MACD.Float(i)
		s, okS := result.Signal.Float(i)
		h, okH := result.Histogram.Float(i)

		suite.True(okM)
		suite.True(okS)
		suite.True(okH)
		suite.InDelta(m-s, h, 1e-12)
	}
}

func (suite *MACDTestSuite) TestRisingSeriesIsBullish() {
	// In a steadily rising series the fast EMA tracks price more closely
	// than the slow EMA, so the MACD line is positive.
	result := MACD(linearCloses(60), 12, 26, 9)

	m, ok := result.MACD.Float(59)
	suite.True(ok)
	suite.Greater(m, 0.0)
}

func (suite *MACDTestSuite) TestSignalNeverLeadsOnLinearRamp() {
	// On a linear ramp the MACD line rises toward its asymptote from
	// below, so its own EMA must trail it; once both have numerically
	// converged they must be equal, not separated by rounding noise. A
	// signal line a few ulps above the MACD here reads as bearish
	// momentum on a strictly rising series.
	result := MACD(linearCloses(40), 12, 26, 9)

	for i := 33; i < 40; i++ {
		m, okM := result.MACD.Float(i)
		s, okS := result.Signal.Float(i)

		suite.True(okM)
		suite.True(okS)
		suite.GreaterOrEqual(m, s)
	}
}

func (suite *MACDTestSuite) TestTooShort() {
	result := MACD(linearCloses(20), 12, 26, 9)
	suite.Equal(-1, result.MACD.FirstDefined())
	suite.Equal(-1, result.Signal.FirstDefined())
	suite.Equal(-1, result.Histogram.FirstDefined())
}
