package render

import (
	"time"

	"StockMonitor/internal/model"
)

// Series is the column-oriented view of a candle sequence consumed by the chart.
// All slices are aligned by index; Dates come from each candle's own timestamp,
// so gaps for weekends and holidays are preserved.
type Series struct {
	Dates  []time.Time
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// NewSeries splits candles into columns.
func NewSeries(candles []model.Candle) Series {
	s := Series{
		Dates:  make([]time.Time, len(candles)),
		Open:   make([]float64, len(candles)),
		High:   make([]float64, len(candles)),
		Low:    make([]float64, len(candles)),
		Close:  make([]float64, len(candles)),
		Volume: make([]float64, len(candles)),
	}
	for i, c := range candles {
		s.Dates[i] = c.Time.UTC()
		s.Open[i] = c.Open
		s.High[i] = c.High
		s.Low[i] = c.Low
		s.Close[i] = c.Close
		s.Volume[i] = c.Volume
	}
	return s
}

func (s Series) Len() int { return len(s.Dates) }

// Tail returns the last n entries, or the whole series when it is shorter.
func (s Series) Tail(n int) Series {
	if n <= 0 || n >= s.Len() {
		return s
	}
	from := s.Len() - n
	return Series{
		Dates:  s.Dates[from:],
		Open:   s.Open[from:],
		High:   s.High[from:],
		Low:    s.Low[from:],
		Close:  s.Close[from:],
		Volume: s.Volume[from:],
	}
}
