package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.PrimaryModel != "gpt-4o" {
		t.Fatalf("unexpected primary model %q", cfg.PrimaryModel)
	}
	if cfg.FallbackModel != "claude-3-5-sonnet-20241022" {
		t.Fatalf("unexpected fallback model %q", cfg.FallbackModel)
	}
	if cfg.QualityThreshold != 8.0 {
		t.Fatalf("expected quality threshold 8.0, got %g", cfg.QualityThreshold)
	}
	if cfg.CandidateCount != 3 {
		t.Fatalf("expected 3 candidates, got %d", cfg.CandidateCount)
	}
	if cfg.BaseTemperature != 0.3 || cfg.TemperatureStep != 0.2 {
		t.Fatalf("unexpected temperature config %g/%g", cfg.BaseTemperature, cfg.TemperatureStep)
	}
	if cfg.MaxResponseTokens != 300 {
		t.Fatalf("expected 300 max tokens, got %d", cfg.MaxResponseTokens)
	}
	if cfg.ModelTimeout != 45*time.Second {
		t.Fatalf("expected 45s model timeout, got %s", cfg.ModelTimeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QUALITY_THRESHOLD", "7.5")
	t.Setenv("CANDIDATE_COUNT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.QualityThreshold != 7.5 {
		t.Fatalf("env override ignored, got %g", cfg.QualityThreshold)
	}
	if cfg.CandidateCount != 5 {
		t.Fatalf("env override ignored, got %d", cfg.CandidateCount)
	}
}
