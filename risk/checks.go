package risk

import "fmt"

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation

	PlannedRisk    float64
	PlannedRiskPct float64
	PlannedRR      float64
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Evaluate checks a sized trade against the policy. kelly is the current
// Kelly fraction; a zero fraction means the recent window shows no edge.
func Evaluate(p Policy, intent TradeIntent, kelly float64) Decision {
	d := Decision{Allowed: true}

	if intent.Stop == 0 || intent.Entry == 0 {
		d.add("NO_STOP_OR_ENTRY", "entry/stop must be set")
		return d
	}
	if kelly <= 0 {
		d.add("NO_EDGE", "kelly fraction is 0 for the recent window")
	}
	if intent.Contracts == 0 {
		d.add("NO_CONTRACTS", "sized position is 0 contracts")
		return d
	}

	vpt := intent.ValuePerTick
	if vpt == 0 {
		vpt = DefaultValuePerTick
	}
	d.PlannedRisk = PlannedRisk(intent.Contracts, intent.Entry, intent.Stop, vpt)
	d.PlannedRiskPct = RiskPct(d.PlannedRisk, p.Bankroll)

	if p.MaxRiskPct > 0 && d.PlannedRiskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds max %.2f%%",
				100*d.PlannedRiskPct, 100*p.MaxRiskPct))
	}

	if intent.Target != 0 {
		d.PlannedRR = RR(intent.Entry, intent.Stop, intent.Target)
		if d.PlannedRR < p.MinRR {
			d.add("RR_TOO_LOW",
				fmt.Sprintf("RR %.2f below minimum %.2f", d.PlannedRR, p.MinRR))
		}
	}

	if p.MaxContracts > 0 && abs64(intent.Contracts) > p.MaxContracts {
		d.add("TOO_MANY_CONTRACTS",
			fmt.Sprintf("contracts %d > max %d", abs64(intent.Contracts), p.MaxContracts))
	}

	return d
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
