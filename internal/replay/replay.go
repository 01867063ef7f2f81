package replay

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Ledger is the part of the trade ledger a replay drives.
type Ledger interface {
	RecordTrade(entry float64, quantity int64, exit float64) journal.TradeRecord
	RecordTradeAt(ts time.Time, entry float64, quantity int64, exit float64) journal.TradeRecord
	CalculatePerformanceMetrics() (float64, bool)
}

// Options controls how replay behaves.
type Options struct {
	// Location for times without a zone. Defaults to time.Local.
	Location *time.Location

	// If true, rows that fail to parse are counted and skipped instead of
	// stopping the replay.
	SkipInvalid bool
}

// Result counts what a replay did.
type Result struct {
	Recorded int
	Skipped  int
	Metrics  int
}

// CSV replays closed trades from a CSV file into the ledger.
//
// CSV formats supported:
//
//  1. Trades:
//     time,entry,quantity,exit
//
//  2. Trades + events:
//     time,entry,quantity,exit,event
//
// A header row is detected by a first cell of "time". An empty time
// records the trade at the current time.
//
// Events (case-insensitive):
//
//	RECORD:   record the row (same as no event)
//	METRICS:  record the row, then recompute the Sharpe ratio
//
// Rows already recorded stay recorded when a later row fails.
func CSV(ctx context.Context, csvPath string, l Ledger, opts Options) (Result, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return Read(ctx, f, l, opts)
}

// Read is CSV over any reader.
func Read(ctx context.Context, r io.Reader, l Ledger, opts Options) (Result, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var res Result
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("replay: line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue
		}

		fill, err := parseRow(row, opts.Location)
		if err != nil {
			if opts.SkipInvalid {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("replay: line %d: %w", line, err)
		}

		if fill.time.IsZero() {
			l.RecordTrade(fill.entry, fill.quantity, fill.exit)
		} else {
			l.RecordTradeAt(fill.time, fill.entry, fill.quantity, fill.exit)
		}
		res.Recorded++

		if fill.event == "METRICS" {
			if _, ok := l.CalculatePerformanceMetrics(); ok {
				res.Metrics++
			}
		}
	}
}

type fill struct {
	time     time.Time
	entry    float64
	quantity int64
	exit     float64
	event    string
}

func parseRow(row []string, loc *time.Location) (fill, error) {
	// Minimum columns: time,entry,quantity,exit
	if len(row) < 4 {
		return fill{}, fmt.Errorf("bad row (need at least 4 cols time,entry,quantity,exit): %v", row)
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	var f fill
	var err error
	if row[0] != "" {
		f.time, err = parseTime(row[0], loc)
		if err != nil {
			return fill{}, fmt.Errorf("bad time %q: %w", row[0], err)
		}
	}
	if f.entry, err = journal.ParsePrice(row[1]); err != nil {
		return fill{}, fmt.Errorf("bad entry %q: %w", row[1], err)
	}
	if f.quantity, err = strconv.ParseInt(row[2], 10, 64); err != nil {
		return fill{}, fmt.Errorf("bad quantity %q: %w", row[2], err)
	}
	if f.exit, err = journal.ParsePrice(row[3]); err != nil {
		return fill{}, fmt.Errorf("bad exit %q: %w", row[3], err)
	}

	if len(row) >= 5 {
		f.event = strings.ToUpper(row[4])
	}
	switch f.event {
	case "", "RECORD", "METRICS":
	default:
		return fill{}, fmt.Errorf("unknown event %q", row[4])
	}
	return f, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time layout")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
