package dashboard

import "github.com/prometheus/client_golang/prometheus"

// Gauges exposed on /metrics:
//   - tradejournal_trades                  rows in the table
//   - tradejournal_net_profit              sum of profit
//   - tradejournal_return_ratio            net profit over bankroll
//   - tradejournal_win_rate                share of trades with profit > 0
//   - tradejournal_kelly_fraction          kelly_fraction of the last row
//   - tradejournal_sharpe_ratio            sharpe_ratio of the last row
//   - tradejournal_last_reload_timestamp_seconds
//   - tradejournal_reload_errors_total
type metrics struct {
	bankroll float64

	trades       prometheus.Gauge
	netProfit    prometheus.Gauge
	returnRatio  prometheus.Gauge
	winRate      prometheus.Gauge
	kelly        prometheus.Gauge
	sharpe       prometheus.Gauge
	lastReload   prometheus.Gauge
	reloadErrors prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, bankroll float64) *metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradejournal",
			Name:      name,
			Help:      help,
		})
	}

	m := &metrics{
		bankroll:    bankroll,
		trades:      gauge("trades", "Trades in the journal"),
		netProfit:   gauge("net_profit", "Sum of trade profit"),
		returnRatio: gauge("return_ratio", "Net profit over bankroll"),
		winRate:     gauge("win_rate", "Share of trades with positive profit"),
		kelly:       gauge("kelly_fraction", "Kelly fraction of the most recent trade"),
		sharpe:      gauge("sharpe_ratio", "Sharpe ratio of the most recent trade"),
		lastReload:  gauge("last_reload_timestamp_seconds", "Unix time of the last successful reload"),
		reloadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tradejournal",
			Name:      "reload_errors_total",
			Help:      "Failed reloads of the journal",
		}),
	}

	reg.MustRegister(m.trades, m.netProfit, m.returnRatio, m.winRate)
	reg.MustRegister(m.kelly, m.sharpe)
	reg.MustRegister(m.lastReload, m.reloadErrors)
	return m
}

func (m *metrics) observe(s *Snapshot) {
	m.trades.Set(float64(len(s.Trades)))
	m.netProfit.Set(s.netProfit)
	m.returnRatio.Set(s.netProfit / m.bankroll)
	m.winRate.Set(s.winRate)
	m.kelly.Set(s.kelly)
	m.sharpe.Set(s.sharpe)
	m.lastReload.Set(float64(s.Loaded.Unix()))
}
