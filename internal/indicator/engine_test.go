package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// mustSeries builds a validated bar series from explicit bars, failing the
// test on invariant violations.
func mustSeries(t *testing.T, bars []types.Bar) types.BarSeries {
	t.Helper()

	series, err := types.NewBarSeries(bars)
	if err != nil {
		t.Fatalf("invalid test series: %v", err)
	}

	return series
}

// seriesFromCloses builds a bar series where only the closes matter: each
// bar opens at its close with a one-unit range around it.
func seriesFromCloses(t *testing.T, closes []float64) types.BarSeries {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		}
	}

	return mustSeries(t, bars)
}

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestAllSeriesAlignedWithInput() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}

	series := seriesFromCloses(suite.T(), closes)
	set := NewEngine(nil).Compute(series)

	for name, s := range map[string]Series{
		"SMA5": set.SMA5, "SMA10": set.SMA10, "SMA20": set.SMA20,
		"SMA50": set.SMA50, "SMA200": set.SMA200,
		"EMA12": set.EMA12, "EMA26": set.EMA26, "EMA50": set.EMA50,
		"BBUpper": set.BBUpper, "BBMiddle": set.BBMiddle,
		"BBLower": set.BBLower, "BBWidth": set.BBWidth,
		"RSI7": set.RSI7, "RSI14": set.RSI14, "RSI21": set.RSI21,
		"MACD": set.MACD, "MACDSignal": set.MACDSignal,
		"MACDHistogram": set.MACDHistogram,
		"StochK":        set.StochK, "StochD": set.StochD,
		"WilliamsR": set.WilliamsR, "CCI": set.CCI, "ROC": set.ROC,
		"ATR7": set.ATR7, "ATR14": set.ATR14, "ATR21": set.ATR21,
		"NATR": set.NATR,
		"OBV":  set.OBV, "AD": set.AD, "ADOSC": set.ADOSC,
		"VolumeROC": set.VolumeROC, "VolumeSMA": set.VolumeSMA,
	} {
		suite.Len(s, series.Len(), "series %s must align with the input", name)
	}
}

func (suite *EngineTestSuite) TestPartialFailureIsIsolated() {
	// Three bars: long-window indicators stay all-None while short-window
	// ones still compute.
	series := seriesFromCloses(suite.T(), []float64{100, 101, 102})
	set := NewEngine(nil).Compute(series)

	suite.Equal(-1, set.SMA200.FirstDefined())
	suite.Equal(-1, set.RSI14.FirstDefined())
	suite.Equal(-1, set.MACD.FirstDefined())

	// OBV has no warm-up window at all.
	suite.Equal(0, set.OBV.FirstDefined())
}

func (suite *EngineTestSuite) TestWarmupOffsets() {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i%11)
	}

	series := seriesFromCloses(suite.T(), closes)
	set := NewEngine(nil).Compute(series)

	suite.Equal(4, set.SMA5.FirstDefined())
	suite.Equal(19, set.SMA20.FirstDefined())
	suite.Equal(199, set.SMA200.FirstDefined())
	suite.Equal(11, set.EMA12.FirstDefined())
	suite.Equal(14, set.RSI14.FirstDefined())
	suite.Equal(25, set.MACD.FirstDefined())
	suite.Equal(33, set.MACDSignal.FirstDefined())
	suite.Equal(13, set.ATR14.FirstDefined())
	// Stochastic: raw %K from 13, slowed by 3 -> 15, %D after 3 more -> 17.
	suite.Equal(15, set.StochK.FirstDefined())
	suite.Equal(17, set.StochD.FirstDefined())
	suite.Equal(13, set.WilliamsR.FirstDefined())
	suite.Equal(13, set.CCI.FirstDefined())
	suite.Equal(10, set.ROC.FirstDefined())
	suite.Equal(13, set.NATR.FirstDefined())
	suite.Equal(0, set.AD.FirstDefined())
	// Chaikin oscillator needs the slow EMA over the A/D line.
	suite.Equal(9, set.ADOSC.FirstDefined())
	suite.Equal(10, set.VolumeROC.FirstDefined())
	suite.Equal(19, set.VolumeSMA.FirstDefined())
}

func (suite *EngineTestSuite) TestDeterministic() {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64((i*13)%17)
	}

	series := seriesFromCloses(suite.T(), closes)

	engine := NewEngine(nil)
	first := engine.Compute(series)
	second := engine.Compute(series)

	suite.Equal(first, second)
}
