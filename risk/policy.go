package risk

type Policy struct {
	Bankroll float64 // e.g. 4000

	// Risk limits
	MaxRiskPct float64 // 0.05

	// Exposure limits
	MaxContracts int64 // 10

	// Trade constraints
	MinRR float64 // 1.5
}

// DefaultPolicy matches the journal's fixed bankroll.
func DefaultPolicy() Policy {
	return Policy{
		Bankroll:     DefaultBankroll,
		MaxRiskPct:   0.05,
		MaxContracts: 10,
		MinRR:        1.5,
	}
}

type TradeIntent struct {
	Contracts int64

	Entry  float64
	Stop   float64
	Target float64 // 0 skips the RR check

	ValuePerTick float64
}
