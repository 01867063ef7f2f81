package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// SQLiteStore keeps the trade table in a SQLite database. Save replaces
// the table contents in a single transaction.
type SQLiteStore struct {
	db  *sql.DB
	ids *id.Generator

	path     string
	readOnly bool
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, ids: id.NewGenerator(), path: path}, nil
}

// NewSQLiteReadOnly opens the database for reading only. Nothing is
// created on disk: a missing database loads as an empty table until it
// appears, and Save fails with ErrReadOnly.
func NewSQLiteReadOnly(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	return &SQLiteStore{path: path, readOnly: true}, nil
}

// connect opens a read-only handle once the database file exists.
func (s *SQLiteStore) connect() (bool, error) {
	if s.db != nil {
		return true, nil
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return false, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return false, fmt.Errorf("open sqlite: %w", err)
	}
	s.db = db
	return true, nil
}

func (s *SQLiteStore) Load() (Table, error) {
	if s.readOnly {
		ok, err := s.connect()
		if err != nil {
			return nil, err
		}
		if !ok {
			return Table{}, nil
		}
	}

	rows, err := s.db.Query(`
		SELECT time, price_t1, quantity, price_t2, profit, kelly_fraction, sharpe_ratio, sharpe_inf
		FROM trades
		ORDER BY row_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := Table{}
	for rows.Next() {
		var (
			rec    TradeRecord
			kelly  sql.NullFloat64
			sharpe sql.NullFloat64
			inf    int
		)
		if err := rows.Scan(
			&rec.Time,
			&rec.EntryPrice,
			&rec.Quantity,
			&rec.ExitPrice,
			&rec.Profit,
			&kelly,
			&sharpe,
			&inf,
		); err != nil {
			return nil, err
		}
		if kelly.Valid {
			rec.KellyFraction = Float(kelly.Float64)
		}
		switch {
		case inf != 0:
			rec.SharpeRatio = Float(math.Inf(inf))
		case sharpe.Valid:
			rec.SharpeRatio = Float(sharpe.Float64)
		}
		t = append(t, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SQLiteStore) Save(t Table) (err error) {
	if s.readOnly {
		return ErrReadOnly
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM trades`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trades
		(row_id, time, price_t1, quantity, price_t2, profit, kelly_fraction, sharpe_ratio, sharpe_inf)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	rowIDs := s.ids.Sequence(len(t))
	for i, r := range t {
		sharpe, inf := sharpeColumns(r.SharpeRatio)
		if _, err = stmt.Exec(
			rowIDs[i], r.Time, r.EntryPrice, r.Quantity,
			r.ExitPrice, r.Profit, nullable(r.KellyFraction), sharpe, inf,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullable(x *float64) any {
	if x == nil {
		return nil
	}
	return *x
}

// sharpeColumns splits a Sharpe value into the REAL column and the
// infinity flag; infinities are kept out of the REAL column.
func sharpeColumns(x *float64) (any, int) {
	switch {
	case x == nil:
		return nil, 0
	case math.IsInf(*x, 1):
		return nil, 1
	case math.IsInf(*x, -1):
		return nil, -1
	}
	return *x, 0
}
