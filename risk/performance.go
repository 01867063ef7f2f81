package risk

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// WinRateByHour maps each hour of the day that has trades to the share
// of those trades with positive profit. Hours come from the recorded
// timestamps in their stored location.
func WinRateByHour(t journal.Table) map[int]float64 {
	wins := map[int]int{}
	total := map[int]int{}
	for _, r := range t {
		h := r.Time.Hour()
		total[h]++
		if r.Win() {
			wins[h]++
		}
	}

	out := make(map[int]float64, len(total))
	for h, n := range total {
		out[h] = float64(wins[h]) / float64(n)
	}
	return out
}

// HourRates orders a by-hour map by hour.
func HourRates(m map[int]float64) []journal.HourRate {
	out := make([]journal.HourRate, 0, len(m))
	for h, r := range m {
		out = append(out, journal.HourRate{Hour: h, WinRate: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
