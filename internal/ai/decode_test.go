package ai

import (
	"errors"
	"testing"
)

func TestDecodeJSONPlainObject(t *testing.T) {
	var out struct {
		Sentiment string `json:"sentiment"`
	}
	if err := DecodeJSON(`{"sentiment":"positive"}`, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Sentiment != "positive" {
		t.Fatalf("got %q", out.Sentiment)
	}
}

func TestDecodeJSONStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"sentiment\":\"neutral\"}\n```"
	var out struct {
		Sentiment string `json:"sentiment"`
	}
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Sentiment != "neutral" {
		t.Fatalf("got %q", out.Sentiment)
	}
}

func TestDecodeJSONStripsSurroundingProse(t *testing.T) {
	raw := `Here is the analysis you asked for: {"score": 8.5} Let me know if you need more.`
	var out struct {
		Score float64 `json:"score"`
	}
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Score != 8.5 {
		t.Fatalf("got %g", out.Score)
	}
}

func TestDecodeJSONNoObject(t *testing.T) {
	var out map[string]any
	if err := DecodeJSON("I could not produce a response.", &out); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestDecodeJSONMalformedObject(t *testing.T) {
	var out map[string]any
	if err := DecodeJSON(`{"sentiment": }`, &out); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("expected ErrInvalidOutput, got %v", err)
	}
}
