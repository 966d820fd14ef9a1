package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

type PatternTestSuite struct {
	suite.Suite

	detector *Detector
}

func TestPatternTestSuite(t *testing.T) {
	suite.Run(t, new(PatternTestSuite))
}

func (s *PatternTestSuite) SetupTest() {
	s.detector = NewDetector(nil)
}

// ohlc builds a bar with high and low widened just enough to satisfy the
// OHLC ordering invariant when the stated values would violate it.
func ohlc(o, h, l, c float64) types.Bar {
	return types.Bar{
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: 1000,
	}
}

// series stamps strictly increasing daily timestamps onto the given bars
// and builds a validated series.
func (s *PatternTestSuite) series(bars ...types.Bar) types.BarSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i].Time = start.AddDate(0, 0, i)
	}

	out, err := types.NewBarSeries(bars)
	s.Require().NoError(err)

	return out
}

func (s *PatternTestSuite) TestDoji() {
	series := s.series(
		ohlc(100, 101, 99, 100.05), // body 0.05, range 2
		ohlc(100, 102, 99, 101.5),  // body 1.5, range 3
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.Doji[0])
	s.Equal(0, set.Doji[1])
}

func (s *PatternTestSuite) TestHammerAfterBearishBar() {
	series := s.series(
		ohlc(141, 141.5, 139, 139.5),     // bearish setup bar
		ohlc(139.6, 140.2, 136, 140),     // lower shadow 3.6 >= 2*body 0.4
		ohlc(140.1, 140.3, 139.9, 140.2), // plain bar
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.Hammer[1])
	s.Equal(0, set.HangingMan[1])
	s.Equal(0, set.Hammer[0], "no lookback on the first bar")
	s.Equal(0, set.Hammer[2])
}

func (s *PatternTestSuite) TestHangingManAfterBullishBar() {
	series := s.series(
		ohlc(139, 140.6, 138.9, 140.5), // bullish setup bar
		ohlc(140.6, 141.2, 137, 141),   // hammer shape in an uptrend
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.HangingMan[1])
	s.Equal(0, set.Hammer[1])
}

func (s *PatternTestSuite) TestShootingStarAndInvertedHammer() {
	shootingStar := ohlc(100.5, 104.5, 100.3, 100.9) // upper shadow 3.6, body 0.4

	series := s.series(
		ohlc(99, 100.6, 98.9, 100.4), // bullish
		shootingStar,
	)
	set := s.detector.Detect(series)
	s.Equal(ScoreBear, set.ShootingStar[1])
	s.Equal(0, set.InvertedHammer[1])

	series = s.series(
		ohlc(102, 102.1, 100.3, 100.5), // bearish
		shootingStar,
	)
	set = s.detector.Detect(series)
	s.Equal(ScoreBull, set.InvertedHammer[1])
	s.Equal(0, set.ShootingStar[1])
}

func (s *PatternTestSuite) TestBullishEngulfing() {
	series := s.series(
		ohlc(101, 101.2, 99.8, 100), // bearish body 100..101
		ohlc(99.9, 102, 99.7, 101.5),
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.Engulfing[1])
}

func (s *PatternTestSuite) TestBearishEngulfing() {
	series := s.series(
		ohlc(100, 101.2, 99.8, 101),
		ohlc(101.1, 101.3, 99.5, 99.8),
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.Engulfing[1])
}

func (s *PatternTestSuite) TestEngulfingRequiresLargerBody() {
	series := s.series(
		ohlc(101, 101.2, 99.8, 100),
		ohlc(100, 101.1, 99.9, 101), // same-size body, no strict engulf
	)

	set := s.detector.Detect(series)

	s.Equal(0, set.Engulfing[1])
}

func (s *PatternTestSuite) TestDarkCloudCover() {
	series := s.series(
		ohlc(100, 104.1, 99.9, 104),    // bullish, body midpoint 102
		ohlc(104.5, 104.6, 101, 101.5), // opens above close, closes below midpoint
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.DarkCloudCover[1])
	s.Equal(0, set.Piercing[1])
}

func (s *PatternTestSuite) TestPiercing() {
	series := s.series(
		ohlc(104, 104.1, 99.9, 100),  // bearish, body midpoint 102
		ohlc(99.5, 103, 99.4, 102.5), // opens below close, closes above midpoint
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.Piercing[1])
	s.Equal(0, set.DarkCloudCover[1])
}

func (s *PatternTestSuite) TestDojiStar() {
	series := s.series(
		ohlc(104, 104.1, 99.9, 100),   // bearish
		ohlc(99.5, 99.8, 99.1, 99.45), // doji gapping below the close
	)
	set := s.detector.Detect(series)
	s.Equal(ScoreBull, set.DojiStar[1])

	series = s.series(
		ohlc(100, 104.1, 99.9, 104),       // bullish
		ohlc(104.5, 104.9, 104.3, 104.55), // doji gapping above the close
	)
	set = s.detector.Detect(series)
	s.Equal(ScoreBear, set.DojiStar[1])
}

func (s *PatternTestSuite) TestMorningStar() {
	series := s.series(
		ohlc(106, 106.1, 99.9, 100),  // long bear, midpoint 103
		ohlc(99.5, 99.8, 99, 99.2),   // small body gapping below 100
		ohlc(99.4, 104.5, 99.3, 104), // bull closing above 103
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.MorningStar[2])
	s.Equal(0, set.EveningStar[2])
}

func (s *PatternTestSuite) TestEveningStar() {
	series := s.series(
		ohlc(100, 106.1, 99.9, 106), // long bull, midpoint 103
		ohlc(106.5, 107, 106.3, 106.8),
		ohlc(106.6, 106.7, 99.5, 100),
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.EveningStar[2])
	s.Equal(0, set.MorningStar[2])
}

func (s *PatternTestSuite) TestThreeWhiteSoldiers() {
	series := s.series(
		ohlc(100, 102.1, 99.9, 102),
		ohlc(101, 103.2, 100.9, 103),
		ohlc(102, 104.3, 101.9, 104),
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.ThreeWhiteSoldiers[2])
}

func (s *PatternTestSuite) TestThreeBlackCrows() {
	series := s.series(
		ohlc(104, 104.1, 101.9, 102),
		ohlc(103, 103.1, 100.8, 101),
		ohlc(102, 102.1, 99.7, 100),
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.ThreeBlackCrows[2])
}

func (s *PatternTestSuite) TestThreeInsideUp() {
	series := s.series(
		ohlc(104, 104.1, 99.9, 100),  // bear body 100..104
		ohlc(101, 103.1, 100.9, 103), // bull inside it
		ohlc(103, 105.1, 102.9, 105), // confirmation above 103
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBull, set.ThreeInside[2])
}

func (s *PatternTestSuite) TestThreeOutsideDown() {
	series := s.series(
		ohlc(100, 101.2, 99.8, 101),
		ohlc(101.1, 101.3, 99.5, 99.8), // bearish engulfing
		ohlc(99.7, 99.8, 98.5, 99),     // confirmation below 99.8
	)

	set := s.detector.Detect(series)

	s.Equal(ScoreBear, set.ThreeOutside[2])
	s.Equal(0, set.ThreeInside[2])
}

func (s *PatternTestSuite) TestLookbackBarsScoreZero() {
	series := s.series(
		ohlc(100, 102.1, 99.9, 102),
		ohlc(101, 103.2, 100.9, 103),
	)

	set := s.detector.Detect(series)

	s.Equal(0, set.Engulfing[0])
	s.Equal(0, set.MorningStar[0])
	s.Equal(0, set.MorningStar[1])
	s.Len(set.Hammer, 2)
}
