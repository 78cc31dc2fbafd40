package training

import (
	"strings"

	"github.com/socialbot-ai/backend/internal/models"
)

// MergeVoice folds a fresh response analysis into an existing profile.
// Policy: the newer analysis overrides tone and response style when it has
// them; list fields are unioned with the current profile's entries first so
// established guidance is never silently dropped.
func MergeVoice(current models.BrandVoice, updates models.BrandVoiceAnalysis) models.BrandVoice {
	merged := current
	if updates.Tone != "" {
		merged.Tone = updates.Tone
	}
	if updates.CommunicationStyle != "" {
		merged.ResponseStyle = updates.CommunicationStyle
	}
	merged.Personality = unionStrings(current.Personality, updates.Personality)
	merged.Values = unionStrings(current.Values, updates.Values)
	merged.DoNotSay = unionStrings(current.DoNotSay, updates.DoNotSay)
	merged.PreferredPhrases = unionStrings(current.PreferredPhrases, unionStrings(updates.CommonPhrases, updates.PreferredGreetings))
	return merged
}

// unionStrings concatenates b onto a, dropping case-insensitive duplicates
// and preserving first-seen order.
func unionStrings(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}
