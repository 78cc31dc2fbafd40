package respond

import (
	"testing"

	"github.com/socialbot-ai/backend/internal/models"
)

func TestSelectBestPicksMaxScore(t *testing.T) {
	qualities := []models.ResponseQuality{
		{OverallScore: 6.5},
		{OverallScore: 9.1},
		{OverallScore: 7.8},
	}
	if idx := SelectBest(qualities); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
}

func TestSelectBestTieResolvesToLowestIndex(t *testing.T) {
	qualities := []models.ResponseQuality{
		{OverallScore: 7.0},
		{OverallScore: 8.5},
		{OverallScore: 8.5},
	}
	if idx := SelectBest(qualities); idx != 1 {
		t.Fatalf("expected first of tied candidates (index 1), got %d", idx)
	}
}

func TestSelectBestSingleCandidate(t *testing.T) {
	qualities := []models.ResponseQuality{{OverallScore: 3.2}}
	if idx := SelectBest(qualities); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
}

func TestSelectBestDeterministic(t *testing.T) {
	qualities := []models.ResponseQuality{
		{OverallScore: 8.0},
		{OverallScore: 8.0},
		{OverallScore: 8.0},
	}
	first := SelectBest(qualities)
	for i := 0; i < 10; i++ {
		if got := SelectBest(qualities); got != first {
			t.Fatalf("selection not deterministic: %d vs %d", got, first)
		}
	}
}
