package journal

import (
	"fmt"
	"io"
	"math"
	"text/template"
	"time"
)

// Summary is a point-in-time view of the journal's statistics.
type Summary struct {
	Created time.Time
	Source  string

	Start time.Time
	End   time.Time

	// Results
	Trades int
	Wins   int
	Losses int

	Bankroll  float64
	NetProfit float64
	ReturnPct float64
	WinRate   float64

	// Sizing and risk-adjusted return
	KellyFraction float64
	SharpeRatio   *float64

	HourlyWinRate []HourRate

	Notes []string
}

// HourRate is the win rate of the trades recorded in one hour of the day.
type HourRate struct {
	Hour    int     `json:"hour"`
	WinRate float64 `json:"win_rate"`
}

var summaryOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"money":  Money,
	"sharpe": func(x *float64) string {
		switch {
		case x == nil:
			return "(not computed)"
		case math.IsInf(*x, 1):
			return "inf"
		}
		return fmt.Sprintf("%.4f", *x)
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var summaryOrgTmpl = template.Must(template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate))

// WriteOrg renders the summary as an Org-mode section.
func (s *Summary) WriteOrg(w io.Writer) error {
	return summaryOrgTmpl.Execute(w, s)
}

// WriteOrgFile renders the summary into path, replacing the file
// atomically. A failed render leaves the old file in place.
func (s *Summary) WriteOrgFile(path string) error {
	return writeFileAtomic(path, s.WriteOrg)
}

const SummaryOrgTemplate = `
* TRADE JOURNAL: {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:PROPERTIES:
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
{{- if .Trades }}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
{{- end }}
:BANKROLL:    {{money .Bankroll}}
:NET_PROFIT:  {{money .NetProfit}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:TRADES:      {{.Trades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{printf "%.2f" (mul100 .WinRate)}}
:KELLY:       {{printf "%.4f" .KellyFraction}}
:SHARPE:      {{sharpe .SharpeRatio}}
:END:

** Performance Summary
- Net Profit:       *{{money .NetProfit}}*
- Return:           *{{printf "%.2f" .ReturnPct}}%*
- Win Rate:         *{{printf "%.2f" (mul100 .WinRate)}}%*
- Kelly Fraction:   *{{printf "%.4f" .KellyFraction}}*
- Sharpe Ratio:     *{{sharpe .SharpeRatio}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Trades}} |

{{- if .HourlyWinRate }}

** Win Rate by Hour
| Hour | Win Rate % |
|------+------------|
{{- range .HourlyWinRate }}
| {{printf "%02d" .Hour}}   | {{printf "%.2f" (mul100 .WinRate)}} |
{{- end }}
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
