package risk

import "math"

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PlannedRisk is the currency lost if the stop is hit: points between
// entry and stop, times contracts, times the value of one point.
func PlannedRisk(contracts int64, entry, stop, valuePerTick float64) float64 {
	return abs(entry-stop) * abs(float64(contracts)) * valuePerTick
}

func RR(entry, stop, target float64) float64 {
	risk := abs(entry - stop)
	reward := abs(target - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

func RiskPct(plannedRisk, bankroll float64) float64 {
	if bankroll <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / bankroll
}
