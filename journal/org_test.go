package journal

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

	trade := TradeRecord{
		Time:          ts,
		EntryPrice:    4500.25,
		Quantity:      2,
		ExitPrice:     4510.5,
		Profit:        25.625,
		KellyFraction: Float(0.2),
	}

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** Trade: LONG 2 @ 2024-03-15 10:30")

	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TIME: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":QUANTITY: 2")
	assert.Contains(t, result, ":ENTRY_PRICE: 4500.25")
	assert.Contains(t, result, ":EXIT_PRICE: 4510.5")
	assert.Contains(t, result, ":PROFIT: 25.63")
	assert.Contains(t, result, ":KELLY_FRACTION: 0.2000")
	assert.Contains(t, result, ":SHARPE_RATIO: -")
	assert.Contains(t, result, ":END:")

	assert.Contains(t, result, "*** Thesis")
	assert.Contains(t, result, "*** Execution")
	assert.Contains(t, result, "*** Review")
}

func TestFormatTradeOrgShort(t *testing.T) {
	t.Parallel()

	trade := TradeRecord{
		Time:       time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		Quantity:   -3,
		ExitPrice:  104,
		Profit:     -15,
	}

	result := FormatTradeOrg(trade)
	assert.Contains(t, result, "** Trade: SHORT 3 @")
	assert.Contains(t, result, ":QUANTITY: -3")
	assert.Contains(t, result, ":PROFIT: -15.00")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	result := FormatTradesOrg(sampleTable())
	assert.Equal(t, 2, strings.Count(result, "** Trade:"))
	assert.Contains(t, result, "\n\n\n** Trade:")

	assert.Empty(t, FormatTradesOrg(Table{}))
}

func TestMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "26.25", Money(26.25))
	assert.Equal(t, "-5.63", Money(-5.625))
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "+Inf", Money(math.Inf(1)))
}

func TestSummaryWriteOrg(t *testing.T) {
	t.Parallel()

	s := Summary{
		Created:       time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC),
		Source:        "trades.csv",
		Start:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Trades:        5,
		Wins:          3,
		Losses:        2,
		Bankroll:      4000,
		NetProfit:     20,
		ReturnPct:     0.5,
		WinRate:       0.6,
		KellyFraction: 0.2,
		SharpeRatio:   Float(math.Inf(1)),
		HourlyWinRate: []HourRate{{Hour: 9, WinRate: 0.5}, {Hour: 14, WinRate: 1}},
		Notes:         []string{"all trades ES"},
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteOrg(&buf))
	out := buf.String()

	assert.Contains(t, out, "* TRADE JOURNAL: trades.csv")
	assert.Contains(t, out, ":START_DATE:  2024-03-01")
	assert.Contains(t, out, ":NET_PROFIT:  20.00")
	assert.Contains(t, out, ":WIN_RATE:    60.00")
	assert.Contains(t, out, ":KELLY:       0.2000")
	assert.Contains(t, out, ":SHARPE:      inf")
	assert.Contains(t, out, "| 09   | 50.00 |")
	assert.Contains(t, out, "| 14   | 100.00 |")
	assert.Contains(t, out, "- all trades ES")
}

func TestSummaryWriteOrgEmpty(t *testing.T) {
	t.Parallel()

	s := Summary{Bankroll: 4000}

	var buf bytes.Buffer
	require.NoError(t, s.WriteOrg(&buf))
	out := buf.String()

	assert.Contains(t, out, "(source?)")
	assert.Contains(t, out, ":SHARPE:      (not computed)")
	assert.NotContains(t, out, ":START_DATE:")
	assert.NotContains(t, out, "Win Rate by Hour")
}

func TestSummaryWriteOrgFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.org")
	s := Summary{Source: "trades.csv", Bankroll: 4000}
	require.NoError(t, s.WriteOrgFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* TRADE JOURNAL: trades.csv")
}
