package risk

import "math"

// DefaultBankroll is the fixed starting capital returns are measured
// against.
const DefaultBankroll = 4000.0

// Returns converts profits into returns on a fixed bankroll.
func Returns(profits []float64, bankroll float64) []float64 {
	out := make([]float64, len(profits))
	for i, p := range profits {
		out[i] = p / bankroll
	}
	return out
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the sample standard deviation (n-1). It is NaN for fewer
// than two values.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// Sharpe is mean(returns)/stdev(returns)*sqrt(n) over the whole history.
// Zero variance gives +Inf and a single profit gives NaN. ok is false
// when there are no profits.
func Sharpe(profits []float64, bankroll float64) (sharpe float64, ok bool) {
	if len(profits) == 0 {
		return 0, false
	}
	if bankroll <= 0 {
		bankroll = DefaultBankroll
	}

	rets := Returns(profits, bankroll)
	if len(rets) < 2 {
		return math.NaN(), true
	}
	sd := StdDev(rets)
	if sd == 0 {
		return math.Inf(1), true
	}
	return Mean(rets) / sd * math.Sqrt(float64(len(rets))), true
}
