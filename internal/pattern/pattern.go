// Package pattern detects classic candlestick patterns over a bar series.
//
// Every detector is a pure function of the current bar and at most two
// preceding bars. Scores are signed strength values on a binary ±100
// scale: positive for a bullish occurrence, negative for a bearish one,
// zero when the pattern is absent or there is not enough lookback.
package pattern

import (
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"go.uber.org/zap"
)

const (
	// ScoreBull and ScoreBear are the binary strength magnitudes assigned
	// to detected occurrences.
	ScoreBull = 100
	ScoreBear = -100

	// dojiBodyRatio is the maximum body-to-range ratio of a doji candle.
	dojiBodyRatio = 0.1
)

// Set holds one signed score slice per catalog pattern, each aligned 1:1
// with the bar series it was computed from.
type Set struct {
	Doji           []int
	Hammer         []int
	HangingMan     []int
	ShootingStar   []int
	InvertedHammer []int

	Engulfing      []int
	DarkCloudCover []int
	Piercing       []int
	DojiStar       []int

	MorningStar        []int
	EveningStar        []int
	ThreeWhiteSoldiers []int
	ThreeBlackCrows    []int
	ThreeInside        []int
	ThreeOutside       []int
}

// Detector computes the pattern catalog from a bar series. Stateless; each
// Detect call owns its own output.
type Detector struct {
	logger *logger.Logger
}

// NewDetector creates a pattern detector. The logger may be nil.
func NewDetector(log *logger.Logger) *Detector {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Detector{logger: log}
}

// Detect scores every catalog pattern at every bar. Bars without enough
// lookback for a pattern score zero for it.
func (d *Detector) Detect(series types.BarSeries) *Set {
	n := series.Len()

	set := &Set{
		Doji:           make([]int, n),
		Hammer:         make([]int, n),
		HangingMan:     make([]int, n),
		ShootingStar:   make([]int, n),
		InvertedHammer: make([]int, n),

		Engulfing:      make([]int, n),
		DarkCloudCover: make([]int, n),
		Piercing:       make([]int, n),
		DojiStar:       make([]int, n),

		MorningStar:        make([]int, n),
		EveningStar:        make([]int, n),
		ThreeWhiteSoldiers: make([]int, n),
		ThreeBlackCrows:    make([]int, n),
		ThreeInside:        make([]int, n),
		ThreeOutside:       make([]int, n),
	}

	for i := 0; i < n; i++ {
		cur := series.At(i)
		set.Doji[i] = scoreDoji(cur)

		if i >= 1 {
			prev := series.At(i - 1)

			set.Hammer[i] = scoreHammer(prev, cur)
			set.HangingMan[i] = scoreHangingMan(prev, cur)
			set.ShootingStar[i] = scoreShootingStar(prev, cur)
			set.InvertedHammer[i] = scoreInvertedHammer(prev, cur)

			set.Engulfing[i] = scoreEngulfing(prev, cur)
			set.DarkCloudCover[i] = scoreDarkCloudCover(prev, cur)
			set.Piercing[i] = scorePiercing(prev, cur)
			set.DojiStar[i] = scoreDojiStar(prev, cur)
		}

		if i >= 2 {
			first := series.At(i - 2)
			second := series.At(i - 1)

			set.MorningStar[i] = scoreMorningStar(first, second, cur)
			set.EveningStar[i] = scoreEveningStar(first, second, cur)
			set.ThreeWhiteSoldiers[i] = scoreThreeWhiteSoldiers(first, second, cur)
			set.ThreeBlackCrows[i] = scoreThreeBlackCrows(first, second, cur)
			set.ThreeInside[i] = scoreThreeInside(first, second, cur)
			set.ThreeOutside[i] = scoreThreeOutside(first, second, cur)
		}
	}

	d.logger.Debug("candlestick patterns detected", zap.Int("bars", n))

	return set
}
