// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CSVStore keeps the trade table in a single CSV file. Every Save
// rewrites the whole file.
type CSVStore struct {
	path string
}

func NewCSV(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string { return s.path }

// Load reads the table. A missing file is an empty table, not an error.
func (s *CSVStore) Load() (Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// Save writes the table to a temp file next to the target and renames it
// into place, so a concurrent reader sees either the old or the new file.
func (s *CSVStore) Save(t Table) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	return writeFileAtomic(s.path, func(w io.Writer) error {
		return WriteCSV(w, t)
	})
}

// writeFileAtomic writes through a temp file in the target's directory and
// renames it over path.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *CSVStore) Close() error { return nil }

// WriteCSV writes the header and every row in schema order.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range t {
		err := cw.Write([]string{
			r.Time.Format(time.RFC3339Nano),
			f(r.EntryPrice),
			strconv.FormatInt(r.Quantity, 10),
			f(r.ExitPrice),
			f(r.Profit),
			nf(r.KellyFraction),
			nf(r.SharpeRatio),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a trade table. Columns are matched by header name so
// files with extra columns still load.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("journal: missing column %q", col)
		}
	}

	t := Table{}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journal: row %d: %w", row, err)
		}

		p := rowParser{rec: rec, idx: idx, row: row}
		tr := TradeRecord{
			Time:          p.timestamp(ColTime),
			EntryPrice:    p.number(ColEntryPrice),
			Quantity:      p.quantity(ColQuantity),
			ExitPrice:     p.number(ColExitPrice),
			Profit:        p.number(ColProfit),
			KellyFraction: p.nullable(ColKellyFraction),
			SharpeRatio:   p.nullable(ColSharpeRatio),
		}
		if p.err != nil {
			return nil, p.err
		}
		t = append(t, tr)
	}
	return t, nil
}

// Timestamp layouts accepted on load. The space separated forms are what
// pandas writes for naive timestamps; those are read as local time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// rowParser keeps the first error so a row can be decoded in one pass.
type rowParser struct {
	rec []string
	idx map[string]int
	row int
	err error
}

func (p *rowParser) cell(col string) string {
	i := p.idx[col]
	if i >= len(p.rec) {
		return ""
	}
	return strings.TrimSpace(p.rec[i])
}

func (p *rowParser) fail(col string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("journal: row %d column %s: %w", p.row, col, err)
	}
}

func (p *rowParser) timestamp(col string) time.Time {
	s := p.cell(col)
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts
		}
	}
	p.fail(col, fmt.Errorf("invalid timestamp %q", s))
	return time.Time{}
}

func (p *rowParser) number(col string) float64 {
	x, err := strconv.ParseFloat(p.cell(col), 64)
	if err != nil {
		p.fail(col, err)
	}
	return x
}

func (p *rowParser) quantity(col string) int64 {
	s := p.cell(col)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// "3.0" shows up when pandas upcasts the column
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || x != math.Trunc(x) {
		p.fail(col, fmt.Errorf("invalid quantity %q", s))
		return 0
	}
	return int64(x)
}

// nullable treats an empty cell or NaN as unset.
func (p *rowParser) nullable(col string) *float64 {
	s := p.cell(col)
	if s == "" {
		return nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(col, err)
		return nil
	}
	if math.IsNaN(x) {
		return nil
	}
	return &x
}

func f(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func nf(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}
