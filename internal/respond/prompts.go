package respond

import (
	"fmt"
	"strings"

	"github.com/socialbot-ai/backend/internal/models"
)

var platformContext = map[models.Platform]string{
	models.PlatformGoogle:      "This is a Google review response that will be public",
	models.PlatformFacebook:    "This is a Facebook comment response",
	models.PlatformInstagram:   "This is an Instagram comment response - keep it engaging",
	models.PlatformYelp:        "This is a Yelp review response that will be public",
	models.PlatformTripAdvisor: "This is a TripAdvisor review response that will be public",
}

// BuildSystemPrompt renders the persona instructions for one generation:
// brand identity, communication rules and the analysis context. Negative
// sentiment switches the closing instruction from appreciation to apology.
func BuildSystemPrompt(voice models.BrandVoice, analysis models.InteractionAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are responding as %s, a %s.\n\n", voice.BusinessName, voice.BusinessType)

	b.WriteString("BRAND PERSONALITY:\n")
	fmt.Fprintf(&b, "- Tone: %s\n", voice.Tone)
	fmt.Fprintf(&b, "- Personality traits: %s\n", strings.Join(voice.Personality, ", "))
	fmt.Fprintf(&b, "- Core values: %s\n", strings.Join(voice.Values, ", "))
	fmt.Fprintf(&b, "- Response style: %s\n\n", voice.ResponseStyle)

	b.WriteString("COMMUNICATION GUIDELINES:\n")
	if len(voice.PreferredPhrases) > 0 {
		fmt.Fprintf(&b, "- Use these preferred phrases when appropriate: %s\n", strings.Join(voice.PreferredPhrases, ", "))
	}
	if len(voice.DoNotSay) > 0 {
		fmt.Fprintf(&b, "- NEVER say: %s\n", strings.Join(voice.DoNotSay, ", "))
	}
	if voice.OwnerName != "" {
		fmt.Fprintf(&b, "- Sign responses as %s\n\n", voice.OwnerName)
	} else {
		b.WriteString("- Sign with the business name\n\n")
	}

	b.WriteString("INTERACTION CONTEXT:\n")
	fmt.Fprintf(&b, "- Customer sentiment: %s\n", analysis.Sentiment)
	fmt.Fprintf(&b, "- Urgency level: %s\n", analysis.Urgency)
	fmt.Fprintf(&b, "- Key topics: %s\n", strings.Join(analysis.KeyPoints, ", "))
	fmt.Fprintf(&b, "- Customer intent: %s\n\n", analysis.CustomerIntent)

	b.WriteString("RESPONSE REQUIREMENTS:\n")
	b.WriteString("1. Address the customer by name when appropriate\n")
	b.WriteString("2. Acknowledge specific points they mentioned\n")
	b.WriteString("3. Match the emotional tone appropriately\n")
	b.WriteString("4. Provide helpful, actionable information\n")
	b.WriteString("5. Maintain professional yet personal communication\n")
	if analysis.Sentiment.IsNegative() {
		b.WriteString("6. Apologize sincerely and offer resolution\n")
	} else {
		b.WriteString("6. Express genuine appreciation\n")
	}
	b.WriteString("7. Include a call-to-action when appropriate\n")
	b.WriteString("8. Keep response length appropriate for the platform\n\n")

	fmt.Fprintf(&b, "Remember: you represent %s and every response reflects on the business reputation.", voice.BusinessName)
	return b.String()
}

// BuildUserPrompt restates the interaction itself plus the analysis insights,
// framed per platform. Ratings are included for reviews only.
func BuildUserPrompt(interaction models.Interaction, analysis models.InteractionAnalysis) string {
	var b strings.Builder

	framing, ok := platformContext[interaction.Platform]
	if !ok {
		framing = fmt.Sprintf("This is a %s %s response", interaction.Platform, interaction.Type)
	}
	fmt.Fprintf(&b, "%s.\n\n", framing)

	b.WriteString("CUSTOMER INTERACTION:\n")
	fmt.Fprintf(&b, "Customer: %s\n", interaction.CustomerName)
	if rating := interaction.EffectiveRating(); rating != nil {
		fmt.Fprintf(&b, "Rating: %d/5 stars\n", *rating)
	}
	fmt.Fprintf(&b, "Message: %q\n", interaction.Content)
	if interaction.Context != nil && interaction.Context.PostContent != "" {
		fmt.Fprintf(&b, "Context: they're commenting on %q\n", interaction.Context.PostContent)
	}
	b.WriteString("\nANALYSIS INSIGHTS:\n")
	fmt.Fprintf(&b, "- This customer seems %s\n", analysis.Sentiment)
	fmt.Fprintf(&b, "- Main concerns: %s\n", strings.Join(analysis.KeyPoints, ", "))
	fmt.Fprintf(&b, "- They want: %s\n", analysis.CustomerIntent)
	fmt.Fprintf(&b, "- Urgency: %s\n\n", analysis.Urgency)

	b.WriteString("Generate a response that:\n")
	b.WriteString("1. Feels authentic and personal (not robotic)\n")
	b.WriteString("2. Addresses their specific points\n")
	b.WriteString("3. Matches our brand voice perfectly\n")
	b.WriteString("4. Provides real value to the customer\n")
	b.WriteString("5. Encourages positive future interaction\n\n")
	b.WriteString("Make it sound like a real person from our business wrote it.")
	return b.String()
}

// BuildAnalysisPrompt asks the model to classify one interaction.
func BuildAnalysisPrompt(interaction models.Interaction) string {
	var b strings.Builder

	b.WriteString("Analyze this customer interaction in detail:\n\n")
	fmt.Fprintf(&b, "Platform: %s\n", interaction.Platform)
	fmt.Fprintf(&b, "Type: %s\n", interaction.Type)
	fmt.Fprintf(&b, "Customer: %s\n", interaction.CustomerName)
	if rating := interaction.EffectiveRating(); rating != nil {
		fmt.Fprintf(&b, "Rating: %d/5 stars\n", *rating)
	}
	fmt.Fprintf(&b, "Content: %q\n", interaction.Content)
	if interaction.Context != nil && interaction.Context.PostContent != "" {
		fmt.Fprintf(&b, "Post context: %q\n", interaction.Context.PostContent)
	}

	b.WriteString("\nProvide a comprehensive analysis focusing on:\n")
	b.WriteString("1. Emotional tone and sentiment\n")
	b.WriteString("2. Key topics and concerns mentioned\n")
	b.WriteString("3. Level of urgency and complexity\n")
	b.WriteString("4. Customer's underlying intent\n")
	b.WriteString("5. Whether this needs human review\n\n")
	b.WriteString("Be thorough and nuanced. Respond with a single JSON object with keys: ")
	b.WriteString(`"sentiment" (one of very_positive, positive, neutral, negative, very_negative), `)
	b.WriteString(`"emotions" (array of strings), "topics" (array of strings), `)
	b.WriteString(`"urgency" (one of low, medium, high, critical), "complexity" (one of simple, moderate, complex), `)
	b.WriteString(`"requires_human_review" (boolean), "key_points" (array of strings), "customer_intent" (string).`)
	return b.String()
}

// BuildAssessmentPrompt asks the model to score one candidate reply.
func BuildAssessmentPrompt(candidate string, interaction models.Interaction, voice models.BrandVoice) string {
	var b strings.Builder

	b.WriteString("Evaluate this AI-generated response for quality:\n\n")
	b.WriteString("ORIGINAL CUSTOMER MESSAGE:\n")
	fmt.Fprintf(&b, "%q\n", interaction.Content)
	if rating := interaction.EffectiveRating(); rating != nil {
		fmt.Fprintf(&b, "Rating: %d/5\n", *rating)
	}

	b.WriteString("\nBRAND VOICE REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Business: %s (%s)\n", voice.BusinessName, voice.BusinessType)
	fmt.Fprintf(&b, "- Tone: %s\n", voice.Tone)
	fmt.Fprintf(&b, "- Personality: %s\n", strings.Join(voice.Personality, ", "))
	if len(voice.DoNotSay) > 0 {
		fmt.Fprintf(&b, "- Should NOT say: %s\n", strings.Join(voice.DoNotSay, ", "))
	}

	b.WriteString("\nAI GENERATED RESPONSE:\n")
	fmt.Fprintf(&b, "%q\n", candidate)

	b.WriteString("\nRate each aspect from 1-10:\n\n")
	b.WriteString("1. APPROPRIATENESS: does it match the situation and platform?\n")
	b.WriteString("2. BRAND ALIGNMENT: does it sound like this specific business?\n")
	b.WriteString("3. HELPFULNESS: does it provide value to the customer?\n")
	b.WriteString("4. PROFESSIONALISM: is it well-written and appropriate?\n")
	b.WriteString("5. SPECIFICITY: does it address specific points mentioned?\n\n")
	b.WriteString("Be critical but fair. Respond with a single JSON object with keys: ")
	b.WriteString(`"appropriateness", "brand_alignment", "helpfulness", "professionalism", "specificity", `)
	b.WriteString(`"overall_score" (all numbers 1-10), "issues" (array of strings), "suggestions" (array of strings).`)
	return b.String()
}
