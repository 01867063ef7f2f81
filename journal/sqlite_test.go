package journal

import (
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("  ")
	assert.Error(t, err)
}

func TestSQLiteLoadEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	defer s.Close()

	tbl, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, tbl)
	assert.Empty(t, tbl)
	assert.Len(t, tbl.Columns(), 7)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	defer s.Close()

	want := sampleTable()
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.True(t, want[i].Time.Equal(got[i].Time))
		assert.InDelta(t, want[i].EntryPrice, got[i].EntryPrice, 1e-9)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.InDelta(t, want[i].ExitPrice, got[i].ExitPrice, 1e-9)
		assert.InDelta(t, want[i].Profit, got[i].Profit, 1e-9)
	}

	assert.Nil(t, got[0].KellyFraction)
	assert.Nil(t, got[0].SharpeRatio)
	require.NotNil(t, got[1].KellyFraction)
	assert.InDelta(t, 0.2, *got[1].KellyFraction, 1e-12)
	require.NotNil(t, got[1].SharpeRatio)
	assert.True(t, math.IsInf(*got[1].SharpeRatio, 1))
}

func TestSQLiteSaveReplacesRows(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	defer s.Close()

	tbl := sampleTable()
	require.NoError(t, s.Save(tbl))

	tbl[0].SharpeRatio = Float(1.5)
	tbl[1].SharpeRatio = Float(1.5)
	require.NoError(t, s.Save(tbl))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		require.NotNil(t, r.SharpeRatio)
		assert.Equal(t, 1.5, *r.SharpeRatio)
	}
}

func TestSQLiteKeepsAppendOrder(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	defer s.Close()

	// times deliberately out of order; the table order must win
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl := Table{}
	for i, offset := range []int{5, 1, 3, 2, 4} {
		tbl = append(tbl, TradeRecord{
			Time:     base.Add(time.Duration(offset) * time.Hour),
			Quantity: int64(i),
		})
	}
	require.NoError(t, s.Save(tbl))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range got {
		assert.Equal(t, int64(i), got[i].Quantity)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := Open(TypeCSV, filepath.Join(dir, "trades.csv"))
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, s)

	s, err = Open(TypeSQLite, filepath.Join(dir, "trades.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, s.Close())

	_, err = Open("parquet", filepath.Join(dir, "trades.parquet"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestSQLiteReadOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "trades.db")

	ro, err := NewSQLiteReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()

	// missing database: empty table, nothing created
	got, err := ro.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, ro.Save(sampleTable()), ErrReadOnly)

	rw, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, rw.Save(sampleTable()))
	require.NoError(t, rw.Close())

	got, err = ro.Load()
	require.NoError(t, err)
	assert.Len(t, got, len(sampleTable()))
	assert.ErrorIs(t, ro.Save(got), ErrReadOnly)
}

func TestOpenReadOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "trades.csv")
	s, err := OpenReadOnly(TypeCSV, csvPath)
	require.NoError(t, err)
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, s.Save(sampleTable()), ErrReadOnly)
	_, err = os.Stat(csvPath)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Close())

	dbPath := filepath.Join(dir, "trades.db")
	s, err = OpenReadOnly(TypeSQLite, dbPath)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	_, err = s.Load()
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Close())

	_, err = OpenReadOnly("parquet", filepath.Join(dir, "trades.parquet"))
	assert.ErrorIs(t, err, ErrUnknownType)
}
