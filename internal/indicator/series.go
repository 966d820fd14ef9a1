package indicator

import (
	"github.com/moznion/go-optional"
)

// Value is a single indicator observation. It is None while the indicator
// is inside its warm-up window, never a silent zero.
type Value = optional.Option[float64]

// Series is an indicator output aligned 1:1 with the bar series that
// produced it: len(series) entries, leading entries None during warm-up.
type Series []Value

// newSeries returns an all-None series of length n.
func newSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = optional.None[float64]()
	}

	return s
}

// Defined reports whether the value at index i is available.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && s[i].IsSome()
}

// Float returns the value at index i and whether it is defined.
func (s Series) Float(i int) (float64, bool) {
	if !s.Defined(i) {
		return 0, false
	}

	return s[i].Unwrap(), true
}

// Last returns the most recent value of the series. It is None for an
// empty series or when the last bar is still inside the warm-up window.
func (s Series) Last() Value {
	if len(s) == 0 {
		return optional.None[float64]()
	}

	return s[len(s)-1]
}

// FirstDefined returns the index of the first defined value, or -1 if the
// series is undefined everywhere.
func (s Series) FirstDefined() int {
	for i := range s {
		if s[i].IsSome() {
			return i
		}
	}

	return -1
}

// fromValues wraps a fully-defined float slice into a Series.
func fromValues(values []float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = optional.Some(v)
	}

	return s
}
