package indicator

import (
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"go.uber.org/zap"
)

// Periods of the fixed indicator catalog.
const (
	PeriodSMA5   = 5
	PeriodSMA10  = 10
	PeriodSMA20  = 20
	PeriodSMA50  = 50
	PeriodSMA200 = 200

	PeriodEMA12 = 12
	PeriodEMA26 = 26
	PeriodEMA50 = 50

	PeriodBollinger  = 20
	BollingerStdDevs = 2.0

	PeriodRSIFast    = 7
	PeriodRSIDefault = 14
	PeriodRSISlow    = 21

	PeriodMACDFast   = 12
	PeriodMACDSlow   = 26
	PeriodMACDSignal = 9

	PeriodStochK       = 14
	PeriodStochSlowing = 3
	PeriodStochD       = 3

	PeriodWilliamsR = 14
	PeriodCCI       = 14
	PeriodROC       = 10

	PeriodATRFast    = 7
	PeriodATRDefault = 14
	PeriodATRSlow    = 21
	PeriodNATR       = 14

	PeriodADOSCFast = 3
	PeriodADOSCSlow = 10
	PeriodVolumeROC = 10
	PeriodVolumeSMA = 20
)

// Set is the full catalog of indicator series computed from one bar series.
// Every field is index-aligned with the source series; warm-up entries are
// None. Field access is compile-time checked, so a misspelled indicator is
// a build error rather than a silent zero.
type Set struct {
	SMA5   Series
	SMA10  Series
	SMA20  Series
	SMA50  Series
	SMA200 Series

	EMA12 Series
	EMA26 Series
	EMA50 Series

	BBUpper  Series
	BBMiddle Series
	BBLower  Series
	BBWidth  Series

	RSI7  Series
	RSI14 Series
	RSI21 Series

	MACD          Series
	MACDSignal    Series
	MACDHistogram Series

	StochK Series
	StochD Series

	WilliamsR Series
	CCI       Series
	ROC       Series

	ATR7  Series
	ATR14 Series
	ATR21 Series
	NATR  Series

	OBV       Series
	AD        Series
	ADOSC     Series
	VolumeROC Series
	VolumeSMA Series
}

// Engine computes the indicator catalog from a bar series. It holds no
// state between invocations; every Compute call owns its own output.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates an indicator engine. The logger may be nil.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{logger: log}
}

// Compute derives the full indicator catalog from the series. Indicators
// are computed independently: a series shorter than one indicator's
// warm-up window leaves only that indicator all-None and never fails the
// engine as a whole.
func (e *Engine) Compute(series types.BarSeries) *Set {
	closes := series.Closes()
	volumes := series.Volumes()

	bb := Bollinger(closes, PeriodBollinger, BollingerStdDevs)
	macd := MACD(closes, PeriodMACDFast, PeriodMACDSlow, PeriodMACDSignal)
	stoch := Stochastic(series, PeriodStochK, PeriodStochSlowing, PeriodStochD)

	set := &Set{
		SMA5:   SMA(closes, PeriodSMA5),
		SMA10:  SMA(closes, PeriodSMA10),
		SMA20:  SMA(closes, PeriodSMA20),
		SMA50:  SMA(closes, PeriodSMA50),
		SMA200: SMA(closes, PeriodSMA200),

		EMA12: EMA(closes, PeriodEMA12),
		EMA26: EMA(closes, PeriodEMA26),
		EMA50: EMA(closes, PeriodEMA50),

		BBUpper:  bb.Upper,
		BBMiddle: bb.Middle,
		BBLower:  bb.Lower,
		BBWidth:  bb.Width,

		RSI7:  RSI(closes, PeriodRSIFast),
		RSI14: RSI(closes, PeriodRSIDefault),
		RSI21: RSI(closes, PeriodRSISlow),

		MACD:          macd.MACD,
		MACDSignal:    macd.Signal,
		MACDHistogram: macd.Histogram,

		StochK: stoch.K,
		StochD: stoch.D,

		WilliamsR: WilliamsR(series, PeriodWilliamsR),
		CCI:       CCI(series, PeriodCCI),
		ROC:       ROC(closes, PeriodROC),

		ATR7:  ATR(series, PeriodATRFast),
		ATR14: ATR(series, PeriodATRDefault),
		ATR21: ATR(series, PeriodATRSlow),
		NATR:  NATR(series, PeriodNATR),

		OBV:       OBV(series),
		AD:        AD(series),
		ADOSC:     ADOSC(series, PeriodADOSCFast, PeriodADOSCSlow),
		VolumeROC: VolumeROC(volumes, PeriodVolumeROC),
		VolumeSMA: SMA(volumes, PeriodVolumeSMA),
	}

	e.logger.Debug("indicator catalog computed",
		zap.Int("bars", series.Len()),
	)

	return set
}
