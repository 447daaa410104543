package calculator

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMASeries_WarmUpAndValues(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6}
	sma := SMASeries(prices, 3)
	if len(sma) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(sma))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(sma[i]) {
			t.Errorf("position %d: expected NaN during warm-up, got %f", i, sma[i])
		}
	}
	want := []float64{2, 3, 4, 5}
	for i, w := range want {
		if !approxEqual(sma[i+2], w) {
			t.Errorf("position %d: expected %f, got %f", i+2, w, sma[i+2])
		}
	}
}

func TestSMASeries_ShortInput(t *testing.T) {
	sma := SMASeries([]float64{1, 2}, 3)
	for i, v := range sma {
		if !math.IsNaN(v) {
			t.Errorf("position %d: expected NaN, got %f", i, v)
		}
	}
}

func TestEMASeries_Recurrence(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14}
	ema := EMASeries(prices, 3)
	alpha := SmoothingFactor(3)
	if !approxEqual(alpha, 0.5) {
		t.Fatalf("expected alpha 0.5 for window 3, got %f", alpha)
	}

	// seeded with the first observation
	e := 10.0
	expected := []float64{e}
	for _, p := range prices[1:] {
		e = alpha*p + (1-alpha)*e
		expected = append(expected, e)
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(ema[i]) {
			t.Errorf("position %d: expected NaN during warm-up, got %f", i, ema[i])
		}
	}
	for i := 2; i < len(prices); i++ {
		if !approxEqual(ema[i], expected[i]) {
			t.Errorf("position %d: expected %f, got %f", i, expected[i], ema[i])
		}
	}
}

func TestEMASeries_ConstantInput(t *testing.T) {
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 42
	}
	ema := EMASeries(prices, 20)
	for i := 19; i < len(ema); i++ {
		if !approxEqual(ema[i], 42) {
			t.Errorf("position %d: expected 42, got %f", i, ema[i])
		}
	}
}

func TestSeries_Idempotent(t *testing.T) {
	prices := make([]float64, 300)
	for i := range prices {
		prices[i] = 100 + math.Sin(float64(i)/7)*10
	}
	a, b := SMASeries(prices, 200), SMASeries(prices, 200)
	c, d := EMASeries(prices, 20), EMASeries(prices, 20)
	for i := range prices {
		if !(a[i] == b[i] || (math.IsNaN(a[i]) && math.IsNaN(b[i]))) {
			t.Fatalf("SMA differs at %d: %f vs %f", i, a[i], b[i])
		}
		if !(c[i] == d[i] || (math.IsNaN(c[i]) && math.IsNaN(d[i]))) {
			t.Fatalf("EMA differs at %d: %f vs %f", i, c[i], d[i])
		}
	}
}
