package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/socialbot-ai/backend/internal/utils"
)

// MockClient produces deterministic, schema-valid output without calling a
// hosted model. Selection is keyed off a hash of the prompt so repeated runs
// on the same input give identical results.
type MockClient struct {
	ModelVersion string
}

func (m MockClient) Complete(ctx context.Context, req Request) (string, error) {
	h := utils.HashStringToUint64(req.System + req.Prompt)

	switch {
	case strings.Contains(req.Prompt, "Analyze this customer interaction"):
		return m.mockAnalysis(req.Prompt, h)
	case strings.Contains(req.Prompt, "Evaluate this AI-generated response"):
		return m.mockQuality(h)
	case strings.Contains(req.Prompt, "brand voice patterns") ||
		strings.Contains(req.Prompt, "understand their brand voice") ||
		strings.Contains(req.Prompt, "brand voice profile"):
		return m.mockVoiceAnalysis(h)
	default:
		return m.mockReply(req.System, h), nil
	}
}

var negativeMarkers = []string{
	"Rating: 1/5", "Rating: 2/5",
	"cold", "slow", "disappointed", "terrible", "unacceptable", "worst", "rude", "never again",
}

func (m MockClient) mockAnalysis(prompt string, h uint64) (string, error) {
	lower := strings.ToLower(prompt)
	negative := false
	for _, marker := range negativeMarkers {
		if strings.Contains(prompt, marker) || strings.Contains(lower, strings.ToLower(marker)) {
			negative = true
			break
		}
	}

	sentiment := "positive"
	urgency := "low"
	intent := "share a positive experience"
	keyPoints := []string{"enjoyed the experience"}
	emotions := []string{"happy"}
	if h%3 == 0 && !negative {
		sentiment = "neutral"
		intent = "ask a question"
		keyPoints = []string{"wants information"}
		emotions = []string{"curious"}
	}
	if negative {
		sentiment = "negative"
		if h%2 == 0 {
			sentiment = "very_negative"
		}
		urgency = "high"
		intent = "get acknowledgement and a resolution"
		keyPoints = []string{"poor service experience", "expects a follow-up"}
		emotions = []string{"frustrated", "disappointed"}
	}

	complexities := []string{"simple", "moderate", "complex"}
	out := map[string]any{
		"sentiment":             sentiment,
		"emotions":              emotions,
		"topics":                []string{"service", "experience"},
		"urgency":               urgency,
		"complexity":            complexities[int(h/11)%len(complexities)],
		"requires_human_review": false,
		"key_points":            keyPoints,
		"customer_intent":       intent,
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func (m MockClient) mockQuality(h uint64) (string, error) {
	base := 6.0 + float64(h%35)/10.0
	sub := func(offset uint64) float64 {
		v := base + float64(offset%3) - 1
		if v < 1 {
			v = 1
		}
		if v > 10 {
			v = 10
		}
		return v
	}
	out := map[string]any{
		"appropriateness": sub(h / 3),
		"brand_alignment": sub(h / 5),
		"helpfulness":     sub(h / 7),
		"professionalism": sub(h / 11),
		"specificity":     sub(h / 13),
		"overall_score":   base,
		"issues":          []string{},
		"suggestions":     []string{},
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func (m MockClient) mockVoiceAnalysis(h uint64) (string, error) {
	tones := []string{"friendly but professional", "warm and personal", "upbeat and casual"}
	out := map[string]any{
		"tone":                tones[h%uint64(len(tones))],
		"personality":         []string{"welcoming", "attentive"},
		"common_phrases":      []string{"thank you so much", "we appreciate you"},
		"response_patterns":   []string{"greet by name, address the point, close warmly"},
		"values":              []string{"quality", "community"},
		"communication_style": "short, personal replies",
		"do_not_say":          []string{"policy", "unfortunately"},
		"preferred_greetings": []string{"Hi", "Hello"},
		"closing_phrases":     []string{"See you soon!"},
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func (m MockClient) mockReply(system string, h uint64) string {
	if strings.Contains(system, "Apologize sincerely") {
		apologies := []string{
			"We're truly sorry to hear about your experience. This isn't the standard we hold ourselves to, and we'd love the chance to make it right. Please reach out to us directly so we can take care of you.",
			"Thank you for letting us know, and we sincerely apologize. We take this feedback seriously and are addressing it with the team. We'd welcome the opportunity to win back your trust.",
		}
		return apologies[h%uint64(len(apologies))]
	}
	thanks := []string{
		"Thank you so much for the kind words! It means a lot to the whole team, and we can't wait to welcome you back.",
		"We really appreciate you taking the time to share this. Visits like yours are why we do what we do. See you again soon!",
	}
	return thanks[h%uint64(len(thanks))]
}
