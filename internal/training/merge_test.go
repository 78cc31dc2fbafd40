package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialbot-ai/backend/internal/models"
)

func TestMergeVoiceOverridesToneAndStyle(t *testing.T) {
	current := models.BrandVoice{
		BusinessName:  "Bella's Bistro",
		BusinessType:  "italian restaurant",
		Tone:          "formal",
		ResponseStyle: "long and detailed",
	}
	updates := models.BrandVoiceAnalysis{
		Tone:               "warm and personal",
		CommunicationStyle: "short, personal replies",
	}

	merged := MergeVoice(current, updates)
	assert.Equal(t, "warm and personal", merged.Tone)
	assert.Equal(t, "short, personal replies", merged.ResponseStyle)
	assert.Equal(t, current.BusinessName, merged.BusinessName)
	assert.Equal(t, current.BusinessType, merged.BusinessType)
}

func TestMergeVoiceKeepsCurrentWhenUpdateEmpty(t *testing.T) {
	current := models.BrandVoice{
		BusinessName:  "Bella's Bistro",
		BusinessType:  "italian restaurant",
		Tone:          "friendly",
		ResponseStyle: "short",
	}

	merged := MergeVoice(current, models.BrandVoiceAnalysis{})
	assert.Equal(t, "friendly", merged.Tone)
	assert.Equal(t, "short", merged.ResponseStyle)
}

func TestMergeVoiceUnionsListsCurrentFirst(t *testing.T) {
	current := models.BrandVoice{
		Personality: []string{"warm", "attentive"},
		Values:      []string{"quality"},
		DoNotSay:    []string{"cheap"},
	}
	updates := models.BrandVoiceAnalysis{
		Personality: []string{"playful"},
		Values:      []string{"community", "quality"},
		DoNotSay:    []string{"policy"},
	}

	merged := MergeVoice(current, updates)
	assert.Equal(t, []string{"warm", "attentive", "playful"}, merged.Personality)
	assert.Equal(t, []string{"quality", "community"}, merged.Values)
	assert.Equal(t, []string{"cheap", "policy"}, merged.DoNotSay)
}

func TestMergeVoicePreferredPhrasesUnionBothSources(t *testing.T) {
	current := models.BrandVoice{PreferredPhrases: []string{"thank you so much"}}
	updates := models.BrandVoiceAnalysis{
		CommonPhrases:      []string{"we appreciate you", "Thank You So Much"},
		PreferredGreetings: []string{"Hi"},
	}

	merged := MergeVoice(current, updates)
	require.Equal(t, []string{"thank you so much", "we appreciate you", "Hi"}, merged.PreferredPhrases)
}

func TestUnionStringsDedupe(t *testing.T) {
	got := unionStrings([]string{"Warm", " warm ", "bold"}, []string{"WARM", "kind", ""})
	assert.Equal(t, []string{"Warm", "bold", "kind"}, got)
}
