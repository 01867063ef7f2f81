package risk

// Contracts are sized so that a stop-out loses Bankroll * KellyFraction.

import "math"

// DefaultValuePerTick is the currency value of a one point move per
// contract.
const DefaultValuePerTick = 1.25

type Inputs struct {
	Bankroll      float64
	KellyFraction float64 // 0.2
	EntryPrice    float64
	StopPrice     float64
	ValuePerTick  float64 // 1.25
}

type Result struct {
	Contracts       int64
	StopPoints      float64
	RiskAmount      float64
	RiskPerContract float64
}

func Calculate(in Inputs) Result {
	vpt := in.ValuePerTick
	if vpt == 0 {
		vpt = DefaultValuePerTick
	}

	stopPoints := math.Abs(in.EntryPrice - in.StopPrice)
	riskAmt := in.Bankroll * in.KellyFraction
	perContract := stopPoints * vpt

	res := Result{
		StopPoints:      stopPoints,
		RiskAmount:      riskAmt,
		RiskPerContract: perContract,
	}
	if perContract <= 0 || riskAmt <= 0 {
		return res
	}
	res.Contracts = int64(math.Floor(riskAmt / perContract))
	return res
}
