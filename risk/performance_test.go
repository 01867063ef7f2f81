package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestWinRateByHour(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tbl := journal.Table{
		{Time: day.Add(9 * time.Hour), Profit: 10},
		{Time: day.Add(9*time.Hour + 30*time.Minute), Profit: -5},
		{Time: day.Add(14 * time.Hour), Profit: 1},
		{Time: day.Add(24*time.Hour + 14*time.Hour), Profit: 0},
		{Time: day.Add(23 * time.Hour), Profit: 0},
	}

	got := WinRateByHour(tbl)
	assert.Equal(t, map[int]float64{9: 0.5, 14: 0.5, 23: 0}, got)

	_, ok := got[10]
	assert.False(t, ok, "hours without trades are absent")
}

func TestWinRateByHourEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, WinRateByHour(journal.Table{}))
}

func TestHourRates(t *testing.T) {
	t.Parallel()

	got := HourRates(map[int]float64{14: 1, 3: 0.25, 9: 0.5})
	assert.Equal(t, []journal.HourRate{
		{Hour: 3, WinRate: 0.25},
		{Hour: 9, WinRate: 0.5},
		{Hour: 14, WinRate: 1},
	}, got)
}
