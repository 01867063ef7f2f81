package journal

import "time"

// Between returns the trades whose time is within [start, end), in
// table order.
func (t Table) Between(start, end time.Time) Table {
	out := Table{}
	for _, r := range t {
		if !r.Time.Before(start) && r.Time.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// Tail returns the last n trades, or all of them when the table is
// shorter. The result shares storage with t.
func (t Table) Tail(n int) Table {
	if n <= 0 {
		return Table{}
	}
	if n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// Profits returns the profit column.
func (t Table) Profits() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Profit
	}
	return out
}

// Last returns the most recent trade.
func (t Table) Last() (TradeRecord, bool) {
	if len(t) == 0 {
		return TradeRecord{}, false
	}
	return t[len(t)-1], true
}

// NetProfit is the sum of the profit column.
func (t Table) NetProfit() float64 {
	var sum float64
	for _, r := range t {
		sum += r.Profit
	}
	return sum
}

// Wins counts the trades with positive profit.
func (t Table) Wins() int {
	n := 0
	for _, r := range t {
		if r.Win() {
			n++
		}
	}
	return n
}
