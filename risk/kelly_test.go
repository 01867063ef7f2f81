package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKellyAlternatingWindow(t *testing.T) {
	t.Parallel()

	got := Kelly([]float64{10, -5, 10, -5, 10}, KellyParams{})

	assert.Equal(t, 5, got.WindowSize)
	assert.Equal(t, 3, got.Wins)
	assert.Equal(t, 2, got.Losses)
	assert.InDelta(t, 0.6, got.WinRate, 1e-12)
	assert.InDelta(t, 10.0, got.AvgWin, 1e-12)
	assert.InDelta(t, 5.0, got.AvgLoss, 1e-12)
	assert.InDelta(t, 2.0, got.Payoff, 1e-12)
	assert.InDelta(t, 0.4, got.Raw, 1e-12)
	assert.InDelta(t, 0.2, got.Fraction, 1e-12)
}

func TestKellyCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profits []float64
		window  int
		want    float64
	}{
		{"empty", nil, 5, 0},
		{"all losses", []float64{-5, -10, -1}, 3, 0},
		{"all wins has no payoff ratio", []float64{10, 20, 5}, 3, 0},
		{"break-even is a zero loss", []float64{10, 0}, 2, 0},
		{"two trades", []float64{10, -5}, 2, 0.125},
		{"negative edge clamps to zero", []float64{1, -10, -10}, 3, 0},
		{"older trades ignored", []float64{-100, -100, 10, -5, 10, -5, 10}, 5, 0.2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Kelly(tt.profits, KellyParams{})
			assert.Equal(t, tt.window, got.WindowSize)
			assert.InDelta(t, tt.want, got.Fraction, 1e-12)
		})
	}
}

func TestKellyAllLossesWinRate(t *testing.T) {
	t.Parallel()

	got := Kelly([]float64{-1, -2, -3, -4, -5}, KellyParams{})
	assert.Equal(t, 0.0, got.WinRate)
	assert.Equal(t, 0.0, got.Fraction)
}

func TestKellyCustomParams(t *testing.T) {
	t.Parallel()

	profits := []float64{-50, 10, -5}

	// window of 2 drops the -50 loss
	got := Kelly(profits, KellyParams{Window: 2, Damping: 1})
	assert.Equal(t, 2, got.WindowSize)
	assert.InDelta(t, 0.25, got.Fraction, 1e-12)
}

func TestKellyBounded(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := rng.Intn(12)
		profits := make([]float64, n)
		for j := range profits {
			profits[j] = (rng.Float64() - 0.4) * 200
		}
		got := Kelly(profits, KellyParams{})
		assert.GreaterOrEqual(t, got.Fraction, 0.0)
		assert.LessOrEqual(t, got.Fraction, 0.5)
	}
}

func TestKellyNaNProfitStaysBounded(t *testing.T) {
	t.Parallel()

	got := Kelly([]float64{math.NaN(), 10, 10}, KellyParams{})
	assert.False(t, math.IsNaN(got.Fraction))
	assert.Equal(t, 0.0, got.Fraction)
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, clamp(-1, 0, 1))
	assert.Equal(t, 1.0, clamp(2, 0, 1))
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, clamp(math.NaN(), 0, 1))
}
