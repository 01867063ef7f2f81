package journal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block suitable for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; the narrative headings are left blank.
func FormatTradeOrg(t TradeRecord) string {
	side := "LONG"
	if t.Quantity < 0 {
		side = "SHORT"
	}
	heading := fmt.Sprintf("** Trade: %s %d @ %s", side, abs64(t.Quantity), t.Time.Format("2006-01-02 15:04"))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", f(t.EntryPrice)))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", f(t.ExitPrice)))
	b.WriteString(fmt.Sprintf(":PROFIT: %s\n", Money(t.Profit)))
	b.WriteString(fmt.Sprintf(":KELLY_FRACTION: %s\n", orgFloat(t.KellyFraction)))
	b.WriteString(fmt.Sprintf(":SHARPE_RATIO: %s\n", orgFloat(t.SharpeRatio)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades Table) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// Money rounds a currency amount to cents.
func Money(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprint(x)
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

func orgFloat(x *float64) string {
	if x == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *x)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
