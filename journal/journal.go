// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the trade table, in the order they are persisted.
const (
	ColTime          = "time"
	ColEntryPrice    = "price_t1"
	ColQuantity      = "quantity"
	ColExitPrice     = "price_t2"
	ColProfit        = "profit"
	ColKellyFraction = "kelly_fraction"
	ColSharpeRatio   = "sharpe_ratio"
)

// Columns is the fixed trade table schema. It is present even when the
// table has no rows.
var Columns = []string{
	ColTime,
	ColEntryPrice,
	ColQuantity,
	ColExitPrice,
	ColProfit,
	ColKellyFraction,
	ColSharpeRatio,
}

// TradeRecord is one closed trade.
type TradeRecord struct {
	Time       time.Time `json:"time"`
	EntryPrice float64   `json:"entry_price"`
	Quantity   int64     `json:"quantity"`
	ExitPrice  float64   `json:"exit_price"`
	Profit     float64   `json:"profit"`

	// nil until computed
	KellyFraction *float64 `json:"kelly_fraction"`
	SharpeRatio   *float64 `json:"sharpe_ratio"`
}

// Win reports whether the trade made money. Break-even counts as a loss.
func (r TradeRecord) Win() bool {
	return r.Profit > 0
}

// Table is the ordered trade table. Order is append order.
type Table []TradeRecord

// Columns returns a copy of the table schema.
func (t Table) Columns() []string {
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return cols
}

// Clone returns a deep copy; nullable fields are not shared.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	out := make(Table, len(t))
	for i, r := range t {
		out[i] = r
		out[i].KellyFraction = cloneFloat(r.KellyFraction)
		out[i].SharpeRatio = cloneFloat(r.SharpeRatio)
	}
	return out
}

// Store loads and persists the whole trade table.
type Store interface {
	Load() (Table, error)
	Save(Table) error
	Close() error
}

// Backend types accepted by Open.
const (
	TypeCSV    = "csv"
	TypeSQLite = "sqlite"
)

var ErrUnknownType = errors.New("journal: unknown store type")

// Open returns the store for the given backend type.
func Open(typ, path string) (Store, error) {
	switch typ {
	case TypeCSV, "":
		return NewCSV(path), nil
	case TypeSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typ)
	}
}

// ErrReadOnly is returned by Save on a store opened with OpenReadOnly.
var ErrReadOnly = errors.New("journal: store is read-only")

// OpenReadOnly returns a store for consumers that only read, such as the
// dashboard. It never creates files.
func OpenReadOnly(typ, path string) (Store, error) {
	switch typ {
	case TypeCSV, "":
		return readOnly{NewCSV(path)}, nil
	case TypeSQLite:
		return NewSQLiteReadOnly(path)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typ)
	}
}

type readOnly struct {
	Store
}

func (readOnly) Save(Table) error { return ErrReadOnly }

// ErrNotFinite rejects NaN and infinite prices.
var ErrNotFinite = errors.New("price must be a finite number")

// ParsePrice parses a trade price. NaN and infinities are rejected so a
// bad row can never reach the profit column.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// Float returns a pointer to x, for the nullable record fields.
func Float(x float64) *float64 {
	return &x
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
