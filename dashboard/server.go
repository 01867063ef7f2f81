package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// Source is anything that can load the trade table. journal stores
// re-read their backing file on every Load.
type Source interface {
	Load() (journal.Table, error)
}

type Options struct {
	PollInterval  time.Duration // 1s
	HistogramBins int           // 20
	Bankroll      float64       // 4000

	Logger   *zap.Logger
	Registry *prometheus.Registry // a private registry when nil
	Now      func() time.Time
}

// Snapshot is an immutable view of the table built by one reload.
type Snapshot struct {
	Loaded     time.Time
	Trades     []TradeView
	Cumulative []Point
	Histogram  []Bin
	Kelly      []Point
	Sharpe     []Point
	WinRate    []journal.HourRate

	netProfit float64
	winRate   float64
	kelly     float64
	sharpe    float64
}

func buildSnapshot(t journal.Table, bins int, now time.Time) *Snapshot {
	s := &Snapshot{
		Loaded:     now,
		Trades:     TradeViews(t),
		Cumulative: CumulativeProfit(t),
		Histogram:  ProfitHistogram(t, bins),
		Kelly:      KellySeries(t),
		Sharpe:     SharpeSeries(t),
		WinRate:    HourlyWinRate(t),
		netProfit:  t.NetProfit(),
	}
	if len(t) > 0 {
		s.winRate = float64(t.Wins()) / float64(len(t))
	}
	if last, ok := t.Last(); ok {
		if last.KellyFraction != nil {
			s.kelly = *last.KellyFraction
		}
		if last.SharpeRatio != nil {
			s.sharpe = *last.SharpeRatio
		}
	}
	return s
}

type Server struct {
	src  Source
	opts Options
	log  *zap.Logger

	mu   sync.RWMutex
	snap *Snapshot

	reg     *prometheus.Registry
	metrics *metrics
}

func New(src Source, opts Options) *Server {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = DefaultHistogramBins
	}
	if opts.Bankroll <= 0 {
		opts.Bankroll = risk.DefaultBankroll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		src:     src,
		opts:    opts,
		log:     log,
		snap:    buildSnapshot(journal.Table{}, opts.HistogramBins, time.Time{}),
		reg:     opts.Registry,
		metrics: newMetrics(opts.Registry, opts.Bankroll),
	}
}

// Snapshot returns the current view. It is never nil.
func (s *Server) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reload reads the source and swaps in a new snapshot. On failure the
// previous snapshot stays in place.
func (s *Server) Reload() error {
	t, err := s.src.Load()
	if err != nil {
		s.metrics.reloadErrors.Inc()
		s.log.Warn("reload trades failed", zap.Error(err))
		return err
	}

	snap := buildSnapshot(t, s.opts.HistogramBins, s.opts.Now())

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.metrics.observe(snap)
	s.log.Debug("trades reloaded", zap.Int("rows", len(t)))
	return nil
}

// Run reloads immediately and then on every poll interval until ctx is
// cancelled. Reload failures are logged and do not stop the loop.
func (s *Server) Run(ctx context.Context) error {
	_ = s.Reload()

	tk := time.NewTicker(s.opts.PollInterval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			_ = s.Reload()
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/trades", s.serve(func(snap *Snapshot) any { return snap.Trades }))
	mux.HandleFunc("GET /api/cumulative", s.serve(func(snap *Snapshot) any { return snap.Cumulative }))
	mux.HandleFunc("GET /api/histogram", s.serve(func(snap *Snapshot) any { return snap.Histogram }))
	mux.HandleFunc("GET /api/kelly", s.serve(func(snap *Snapshot) any { return snap.Kelly }))
	mux.HandleFunc("GET /api/sharpe", s.serve(func(snap *Snapshot) any { return snap.Sharpe }))
	mux.HandleFunc("GET /api/winrate", s.serve(func(snap *Snapshot) any { return snap.WinRate }))

	return s.logRequests(mux)
}

func (s *Server) serve(pick func(*Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := s.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if !snap.Loaded.IsZero() {
			w.Header().Set("Last-Modified", snap.Loaded.UTC().Format(http.TimeFormat))
		}
		if err := json.NewEncoder(w).Encode(pick(snap)); err != nil {
			s.log.Warn("encode response", zap.Error(err))
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// ListenAndServe runs the poller and the HTTP server until ctx is
// cancelled, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Run(ctx)
	}()

	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving dashboard", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}
	cancel()

	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)

	wg.Wait()
	return err
}
