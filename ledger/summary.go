package ledger

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// Summary collects the ledger statistics for reports. It reads the
// stored Sharpe value and does not recompute it.
func (l *Ledger) Summary(source string) journal.Summary {
	s := journal.Summary{
		Created:       l.opts.Now(),
		Source:        source,
		Trades:        len(l.trades),
		Wins:          l.trades.Wins(),
		Bankroll:      l.opts.Bankroll,
		NetProfit:     l.trades.NetProfit(),
		KellyFraction: l.kelly,
		HourlyWinRate: risk.HourRates(l.CalculateWinRate()),
	}
	s.Losses = s.Trades - s.Wins
	s.ReturnPct = s.NetProfit / s.Bankroll * 100

	if s.Trades == 0 {
		s.Notes = append(s.Notes, "no trades recorded yet")
		return s
	}

	s.WinRate = float64(s.Wins) / float64(s.Trades)
	s.Start = l.trades[0].Time
	s.End = l.trades[len(l.trades)-1].Time

	last, _ := l.trades.Last()
	if last.SharpeRatio != nil {
		s.SharpeRatio = journal.Float(*last.SharpeRatio)
	} else {
		s.Notes = append(s.Notes, "sharpe ratio not computed; run the metrics command")
	}

	if k := l.KellyBreakdown(); k.Losses > 0 && k.Wins == 0 {
		s.Notes = append(s.Notes, fmt.Sprintf("last %d trades were all losses", k.WindowSize))
	} else if k.Wins > 0 && k.Losses == 0 {
		s.Notes = append(s.Notes, fmt.Sprintf("last %d trades were all wins; kelly is 0 without a loss to size against", k.WindowSize))
	}
	return s
}
