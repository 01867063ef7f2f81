// Package ledger is the append-only trade ledger. Every mutation is
// followed by a full save of the table; save failures are logged and kept
// as LastSaveError, never returned, so the in-memory ledger stays the
// source of truth until the next successful save.
//
// A Ledger is not safe for concurrent use.
package ledger

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// DefaultInitialKelly is the sizing fraction before any trade has been
// recorded.
const DefaultInitialKelly = 0.1

type Options struct {
	Bankroll     float64 // 4000
	ValuePerTick float64 // 1.25
	Kelly        risk.KellyParams
	InitialKelly float64

	Logger *zap.Logger
	Now    func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Bankroll:     risk.DefaultBankroll,
		ValuePerTick: risk.DefaultValuePerTick,
		Kelly: risk.KellyParams{
			Window:  risk.DefaultKellyWindow,
			Damping: risk.DefaultKellyDamping,
		},
		InitialKelly: DefaultInitialKelly,
	}
}

type Ledger struct {
	store journal.Store
	opts  Options
	log   *zap.Logger

	trades journal.Table
	kelly  float64

	lastSaveErr error
}

// Open loads the table from store. The Kelly fraction starts from the
// most recent row when it has one, otherwise from opts.InitialKelly.
func Open(store journal.Store, opts Options) (*Ledger, error) {
	if opts.Bankroll <= 0 {
		opts.Bankroll = risk.DefaultBankroll
	}
	if opts.ValuePerTick == 0 {
		opts.ValuePerTick = risk.DefaultValuePerTick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	trades, err := store.Load()
	if err != nil {
		return nil, err
	}
	if trades == nil {
		trades = journal.Table{}
	}

	l := &Ledger{
		store:  store,
		opts:   opts,
		log:    log,
		trades: trades,
		kelly:  opts.InitialKelly,
	}
	if last, ok := trades.Last(); ok && last.KellyFraction != nil {
		l.kelly = *last.KellyFraction
	}

	log.Debug("ledger opened", zap.Int("rows", len(trades)), zap.Float64("kelly_fraction", l.kelly))
	return l, nil
}

// Profit is the currency result of a closed trade.
func Profit(entry float64, quantity int64, exit, valuePerTick float64) float64 {
	q := float64(quantity)
	return (exit*q - entry*q) * valuePerTick
}

// RecordTrade appends a closed trade, recomputes the Kelly fraction and
// saves. Zero and negative quantities are accepted as given.
func (l *Ledger) RecordTrade(entry float64, quantity int64, exit float64) journal.TradeRecord {
	return l.RecordTradeAt(l.opts.Now(), entry, quantity, exit)
}

// RecordTradeAt is RecordTrade with an explicit trade time. Rows keep
// append order even when ts is earlier than the last row.
func (l *Ledger) RecordTradeAt(ts time.Time, entry float64, quantity int64, exit float64) journal.TradeRecord {
	rec := journal.TradeRecord{
		Time:       ts,
		EntryPrice: entry,
		Quantity:   quantity,
		ExitPrice:  exit,
		Profit:     Profit(entry, quantity, exit, l.opts.ValuePerTick),
	}
	l.trades = append(l.trades, rec)

	l.log.Info("trade recorded",
		zap.Float64("entry_price", entry),
		zap.Int64("quantity", quantity),
		zap.Float64("exit_price", exit),
		zap.Float64("profit", rec.Profit),
	)

	l.UpdateKellyFraction()

	last, _ := l.Last()
	return last
}

// UpdateKellyFraction recomputes the fraction over the tail window and
// writes it to the most recent row. The table is saved even when the
// ledger is empty.
func (l *Ledger) UpdateKellyFraction() float64 {
	res := risk.Kelly(l.trades.Profits(), l.opts.Kelly)
	l.kelly = res.Fraction

	if n := len(l.trades); n > 0 {
		l.trades[n-1].KellyFraction = journal.Float(res.Fraction)
	}

	l.log.Debug("kelly fraction updated",
		zap.Int("window", res.WindowSize),
		zap.Float64("win_rate", res.WinRate),
		zap.Float64("payoff", res.Payoff),
		zap.Float64("kelly_fraction", res.Fraction),
	)

	l.save()
	return res.Fraction
}

// CalculatePerformanceMetrics computes the whole-history Sharpe ratio,
// writes it into every row and saves. A single trade has no ratio (NaN),
// which clears the column. It does nothing on an empty
// ledger; ok reports whether a value was computed.
func (l *Ledger) CalculatePerformanceMetrics() (sharpe float64, ok bool) {
	sharpe, ok = risk.Sharpe(l.trades.Profits(), l.opts.Bankroll)
	if !ok {
		return 0, false
	}

	for i := range l.trades {
		l.trades[i].SharpeRatio = nil
		if !math.IsNaN(sharpe) {
			l.trades[i].SharpeRatio = journal.Float(sharpe)
		}
	}
	l.log.Info("sharpe ratio updated", zap.Float64("sharpe_ratio", sharpe), zap.Int("rows", len(l.trades)))

	l.save()
	return sharpe, true
}

// CalculateWinRate maps each hour of the day with trades to its win rate.
func (l *Ledger) CalculateWinRate() map[int]float64 {
	return risk.WinRateByHour(l.trades)
}

// KellyFraction is the current sizing fraction for the next trade.
func (l *Ledger) KellyFraction() float64 { return l.kelly }

// KellyBreakdown recomputes the estimator over the current window without
// touching the ledger.
func (l *Ledger) KellyBreakdown() risk.KellyResult {
	return risk.Kelly(l.trades.Profits(), l.opts.Kelly)
}

// Trades returns a copy of the table.
func (l *Ledger) Trades() journal.Table { return l.trades.Clone() }

func (l *Ledger) Len() int { return len(l.trades) }

func (l *Ledger) Last() (journal.TradeRecord, bool) {
	r, ok := l.trades.Last()
	if !ok {
		return r, false
	}
	return journal.Table{r}.Clone()[0], true
}

// Between returns copies of the trades recorded within [start, end).
func (l *Ledger) Between(start, end time.Time) journal.Table {
	return l.trades.Between(start, end).Clone()
}

func (l *Ledger) Options() Options { return l.opts }

// LastSaveError is the error from the most recent save, nil once a save
// succeeds again.
func (l *Ledger) LastSaveError() error { return l.lastSaveErr }

func (l *Ledger) Close() error {
	return l.store.Close()
}

func (l *Ledger) save() {
	if err := l.store.Save(l.trades); err != nil {
		l.lastSaveErr = err
		l.log.Error("failed to save trades", zap.Error(err), zap.Int("rows", len(l.trades)))
		return
	}
	l.lastSaveErr = nil
	l.log.Debug("trades saved", zap.Int("rows", len(l.trades)))
}
