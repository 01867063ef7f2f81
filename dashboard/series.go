// Package dashboard turns a loaded trade table into chart series and
// serves them read-only over HTTP, together with Prometheus gauges.
package dashboard

import (
	"math"
	"strconv"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// DefaultHistogramBins is the bin count of the profit distribution.
const DefaultHistogramBins = 20

// Number is a float that survives JSON: NaN encodes as null and the
// infinities as the strings "Infinity" and "-Infinity".
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte("null"), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// numberOf maps a nil value to NaN.
func numberOf(p *float64) Number {
	if p == nil {
		return Number(math.NaN())
	}
	return Number(*p)
}

// Point is one sample of a time series.
type Point struct {
	Time  time.Time `json:"time"`
	Value Number    `json:"value"`
}

// Bin is one histogram bucket covering [Lo, Hi); the last bin also
// includes Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// TradeView is a trade row in its JSON-safe form.
type TradeView struct {
	Time          time.Time `json:"time"`
	EntryPrice    float64   `json:"price_t1"`
	Quantity      int64     `json:"quantity"`
	ExitPrice     float64   `json:"price_t2"`
	Profit        Number    `json:"profit"`
	KellyFraction Number    `json:"kelly_fraction"`
	SharpeRatio   Number    `json:"sharpe_ratio"`
}

func TradeViews(t journal.Table) []TradeView {
	out := make([]TradeView, len(t))
	for i, r := range t {
		out[i] = TradeView{
			Time:          r.Time,
			EntryPrice:    r.EntryPrice,
			Quantity:      r.Quantity,
			ExitPrice:     r.ExitPrice,
			Profit:        Number(r.Profit),
			KellyFraction: numberOf(r.KellyFraction),
			SharpeRatio:   numberOf(r.SharpeRatio),
		}
	}
	return out
}

// CumulativeProfit is the running sum of profit in table order.
func CumulativeProfit(t journal.Table) []Point {
	out := make([]Point, len(t))
	var sum float64
	for i, r := range t {
		sum += r.Profit
		out[i] = Point{Time: r.Time, Value: Number(sum)}
	}
	return out
}

// ProfitHistogram buckets profits into nbins equal-width bins spanning
// the observed range. When every profit is the same there is a single
// bin. nbins <= 0 means DefaultHistogramBins.
func ProfitHistogram(t journal.Table, nbins int) []Bin {
	if len(t) == 0 {
		return []Bin{}
	}
	if nbins <= 0 {
		nbins = DefaultHistogramBins
	}

	lo, hi := t[0].Profit, t[0].Profit
	for _, r := range t[1:] {
		lo = math.Min(lo, r.Profit)
		hi = math.Max(hi, r.Profit)
	}
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(t)}}
	}

	width := (hi - lo) / float64(nbins)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[nbins-1].Hi = hi

	for _, r := range t {
		i := int((r.Profit - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		bins[i].Count++
	}
	return bins
}

// KellySeries is the stored kelly_fraction per row; rows without one
// carry NaN.
func KellySeries(t journal.Table) []Point {
	out := make([]Point, len(t))
	for i, r := range t {
		out[i] = Point{Time: r.Time, Value: numberOf(r.KellyFraction)}
	}
	return out
}

// SharpeSeries is the stored sharpe_ratio per row; rows without one
// carry NaN.
func SharpeSeries(t journal.Table) []Point {
	out := make([]Point, len(t))
	for i, r := range t {
		out[i] = Point{Time: r.Time, Value: numberOf(r.SharpeRatio)}
	}
	return out
}

// HourlyWinRate is the win rate per hour of day, ordered by hour.
func HourlyWinRate(t journal.Table) []journal.HourRate {
	return risk.HourRates(risk.WinRateByHour(t))
}
