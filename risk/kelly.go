package risk

import "math"

// Kelly estimator defaults.
const (
	DefaultKellyWindow  = 5
	DefaultKellyDamping = 0.5 // half-Kelly
)

type KellyParams struct {
	Window  int     // most recent trades considered
	Damping float64 // applied after clamping to [0, 1]
}

func (p KellyParams) withDefaults() KellyParams {
	if p.Window <= 0 {
		p.Window = DefaultKellyWindow
	}
	if p.Damping <= 0 {
		p.Damping = DefaultKellyDamping
	}
	return p
}

// KellyResult is the fraction together with the inputs it came from.
type KellyResult struct {
	WindowSize int
	Wins       int
	Losses     int

	WinRate float64 // p
	AvgWin  float64
	AvgLoss float64 // mean absolute loss
	Payoff  float64 // b = AvgWin / AvgLoss, 0 when there are no losses

	Raw      float64 // p - q/b before clamping
	Fraction float64
}

// Kelly computes the damped Kelly fraction over the tail window of
// profits. Break-even trades count as losses. A window without losses
// has no payoff ratio and yields 0, as does an empty window.
func Kelly(profits []float64, p KellyParams) KellyResult {
	p = p.withDefaults()

	window := profits
	if len(window) > p.Window {
		window = window[len(window)-p.Window:]
	}

	res := KellyResult{WindowSize: len(window)}
	if len(window) == 0 {
		return res
	}

	var winSum, lossSum float64
	for _, x := range window {
		if x > 0 {
			res.Wins++
			winSum += x
		} else {
			res.Losses++
			lossSum += abs(x)
		}
	}

	res.WinRate = float64(res.Wins) / float64(len(window))
	if res.Wins > 0 {
		res.AvgWin = winSum / float64(res.Wins)
	}
	if res.Losses > 0 {
		res.AvgLoss = lossSum / float64(res.Losses)
	}
	if res.AvgLoss != 0 {
		res.Payoff = res.AvgWin / res.AvgLoss
	}
	if res.Payoff != 0 {
		res.Raw = res.WinRate - (1-res.WinRate)/res.Payoff
	}

	res.Fraction = clamp(res.Raw, 0, 1) * p.Damping
	return res
}

// clamp bounds x to [lo, hi]; NaN maps to lo.
func clamp(x, lo, hi float64) float64 {
	if x < lo || math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
