package training

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/socialbot-ai/backend/internal/models"
)

const voiceAnalysisSchema = `Respond with a single JSON object with keys: ` +
	`"tone" (string), "personality" (array of strings), "common_phrases" (array of strings), ` +
	`"response_patterns" (array of strings), "values" (array of strings), ` +
	`"communication_style" (string), "do_not_say" (array of strings), ` +
	`"preferred_greetings" (array of strings), "closing_phrases" (array of strings).`

func buildApprovedResponsesPrompt(responses []string) string {
	var b strings.Builder

	b.WriteString("Analyze these approved business responses to extract brand voice patterns:\n\n")
	for i, response := range responses {
		fmt.Fprintf(&b, "Response %d: %q\n\n", i+1, response)
	}
	b.WriteString("Extract:\n")
	b.WriteString("1. Consistent tone and personality traits\n")
	b.WriteString("2. Common phrases and expressions used\n")
	b.WriteString("3. Response patterns and structures\n")
	b.WriteString("4. Underlying values and principles\n")
	b.WriteString("5. Communication style preferences\n")
	b.WriteString("6. Things they would never say\n")
	b.WriteString("7. Preferred greetings and closings\n\n")
	b.WriteString("Be specific and detailed. ")
	b.WriteString(voiceAnalysisSchema)
	return b.String()
}

func buildBusinessContentPrompt(description string, content []string) string {
	var b strings.Builder

	b.WriteString("Analyze this business content to understand their brand voice:\n\n")
	fmt.Fprintf(&b, "Business description: %q\n\n", description)
	if len(content) > 0 {
		b.WriteString("Additional content:\n")
		for i, item := range content {
			fmt.Fprintf(&b, "Content %d: %q\n\n", i+1, item)
		}
	}
	b.WriteString("Extract the brand voice characteristics that should be reflected in customer responses. ")
	b.WriteString(voiceAnalysisSchema)
	return b.String()
}

func buildSynthesisPrompt(responseAnalysis *models.BrandVoiceAnalysis, contentAnalysis models.BrandVoiceAnalysis, ownerInput string) string {
	var b strings.Builder

	b.WriteString("Synthesize a comprehensive brand voice profile from these analyses:\n\n")
	if responseAnalysis != nil {
		ra, _ := json.Marshal(responseAnalysis)
		fmt.Fprintf(&b, "Response analysis: %s\n\n", ra)
	} else {
		b.WriteString("No response data available\n\n")
	}
	ca, _ := json.Marshal(contentAnalysis)
	fmt.Fprintf(&b, "Content analysis: %s\n\n", ca)
	if ownerInput != "" {
		fmt.Fprintf(&b, "Owner input: %q\n\n", ownerInput)
	}
	b.WriteString("Create a unified brand voice profile that:\n")
	b.WriteString("1. Combines insights from all sources\n")
	b.WriteString("2. Resolves any conflicts intelligently\n")
	b.WriteString("3. Provides clear, actionable guidelines\n")
	b.WriteString("4. Ensures consistency across all responses\n\n")
	b.WriteString("Focus on a distinctive, authentic voice that customers will recognize. ")
	b.WriteString(voiceAnalysisSchema)
	return b.String()
}
