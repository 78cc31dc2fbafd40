package quality

import (
	"math"
	"testing"
)

func TestTrendSlopeOfDecliningScores(t *testing.T) {
	// Perfectly linear decline of one point per response.
	got := Trend([]float64{9, 8, 7, 6, 5})
	if math.Abs(got-(-1.0)) > 1e-9 {
		t.Fatalf("expected slope -1.0, got %g", got)
	}
}

func TestTrendSlopeOfImprovingScores(t *testing.T) {
	got := Trend([]float64{5, 6, 7, 8})
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected slope 1.0, got %g", got)
	}
}

func TestTrendFlatScores(t *testing.T) {
	if got := Trend([]float64{7.5, 7.5, 7.5}); got != 0 {
		t.Fatalf("expected slope 0 for flat scores, got %g", got)
	}
}

func TestTrendTooFewSamples(t *testing.T) {
	if got := Trend(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %g", got)
	}
	if got := Trend([]float64{8.2}); got != 0 {
		t.Fatalf("expected 0 for a single sample, got %g", got)
	}
}

func TestTrendNoisyDecline(t *testing.T) {
	// Noisy but clearly declining series still reports a negative slope.
	got := Trend([]float64{9.2, 8.1, 8.6, 6.9, 6.2, 5.8})
	if got >= 0 {
		t.Fatalf("expected negative slope, got %g", got)
	}
}
