package models

import "time"

type Platform string

const (
	PlatformGoogle      Platform = "google"
	PlatformFacebook    Platform = "facebook"
	PlatformInstagram   Platform = "instagram"
	PlatformYelp        Platform = "yelp"
	PlatformTripAdvisor Platform = "tripadvisor"
)

type InteractionType string

const (
	TypeReview  InteractionType = "review"
	TypeComment InteractionType = "comment"
	TypeMessage InteractionType = "message"
	TypeDM      InteractionType = "dm"
)

type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very_positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very_negative"
)

// IsNegative reports whether the sentiment is any negative variant.
func (s Sentiment) IsNegative() bool {
	return s == SentimentNegative || s == SentimentVeryNegative
}

type BrandVoice struct {
	BusinessName     string   `json:"business_name" validate:"required"`
	BusinessType     string   `json:"business_type" validate:"required"`
	Personality      []string `json:"personality"`
	Tone             string   `json:"tone"`
	Values           []string `json:"values"`
	ResponseStyle    string   `json:"response_style"`
	OwnerName        string   `json:"owner_name,omitempty"`
	DoNotSay         []string `json:"do_not_say"`
	PreferredPhrases []string `json:"preferred_phrases"`
	Signature        string   `json:"signature,omitempty"`
}

type InteractionContext struct {
	PostContent  string `json:"post_content,omitempty"`
	Location     string `json:"location,omitempty"`
	OrderDetails string `json:"order_details,omitempty"`
}

type Interaction struct {
	ID           string              `json:"id"`
	Platform     Platform            `json:"platform" validate:"required,oneof=google facebook instagram yelp tripadvisor"`
	Type         InteractionType     `json:"type" validate:"required,oneof=review comment message dm"`
	Content      string              `json:"content" validate:"required"`
	Rating       *int                `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	CustomerName string              `json:"customer_name"`
	Context      *InteractionContext `json:"context,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// EffectiveRating returns the rating only for review interactions.
// Stray ratings on comments, messages and DMs are not meaningful.
func (i Interaction) EffectiveRating() *int {
	if i.Type != TypeReview {
		return nil
	}
	return i.Rating
}

type InteractionAnalysis struct {
	Sentiment           Sentiment `json:"sentiment" validate:"required,oneof=very_positive positive neutral negative very_negative"`
	Emotions            []string  `json:"emotions"`
	Topics              []string  `json:"topics"`
	Urgency             string    `json:"urgency" validate:"required,oneof=low medium high critical"`
	Complexity          string    `json:"complexity" validate:"required,oneof=simple moderate complex"`
	RequiresHumanReview bool      `json:"requires_human_review"`
	KeyPoints           []string  `json:"key_points"`
	CustomerIntent      string    `json:"customer_intent"`
}

// ResponseQuality is the assessor's verdict on one candidate reply.
// OverallScore is assessor-determined and is not required to be the mean
// of the five sub-scores.
type ResponseQuality struct {
	Appropriateness float64  `json:"appropriateness" validate:"gte=1,lte=10"`
	BrandAlignment  float64  `json:"brand_alignment" validate:"gte=1,lte=10"`
	Helpfulness     float64  `json:"helpfulness" validate:"gte=1,lte=10"`
	Professionalism float64  `json:"professionalism" validate:"gte=1,lte=10"`
	Specificity     float64  `json:"specificity" validate:"gte=1,lte=10"`
	OverallScore    float64  `json:"overall_score" validate:"gte=1,lte=10"`
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
}

type GenerationResult struct {
	Response            string              `json:"response"`
	Quality             ResponseQuality     `json:"quality"`
	Analysis            InteractionAnalysis `json:"analysis"`
	Model               string              `json:"model"`
	RequiresHumanReview bool                `json:"requires_human_review"`
	ProcessingTime      float64             `json:"processing_time"`
}

// QualityMetric is one append-only record per completed generation.
type QualityMetric struct {
	ID                   string    `json:"id"`
	ResponseID           string    `json:"response_id"`
	BusinessID           string    `json:"business_id"`
	QualityScore         float64   `json:"quality_score"`
	HumanApprovalRate    float64   `json:"human_approval_rate"`
	CustomerSatisfaction *float64  `json:"customer_satisfaction,omitempty"`
	EditDistance         *int      `json:"edit_distance,omitempty"`
	Model                string    `json:"model"`
	ProcessingTime       float64   `json:"processing_time"`
	CreatedAt            time.Time `json:"created_at"`
}

// BrandVoiceAnalysis is the trainer's intermediate extraction from either
// approved responses or business content.
type BrandVoiceAnalysis struct {
	Tone               string   `json:"tone"`
	Personality        []string `json:"personality"`
	CommonPhrases      []string `json:"common_phrases"`
	ResponsePatterns   []string `json:"response_patterns"`
	Values             []string `json:"values"`
	CommunicationStyle string   `json:"communication_style"`
	DoNotSay           []string `json:"do_not_say"`
	PreferredGreetings []string `json:"preferred_greetings"`
	ClosingPhrases     []string `json:"closing_phrases"`
}

type TrainingData struct {
	BusinessName        string   `json:"business_name" validate:"required"`
	BusinessType        string   `json:"business_type" validate:"required"`
	ApprovedResponses   []string `json:"approved_responses"`
	BusinessDescription string   `json:"business_description" validate:"required"`
	ExistingContent     []string `json:"existing_content,omitempty"`
	OwnerInput          string   `json:"owner_input,omitempty"`
}

// BrandVoiceRecord is one persisted, versioned brand voice profile.
type BrandVoiceRecord struct {
	BusinessID      string     `json:"business_id"`
	Version         int        `json:"version"`
	Voice           BrandVoice `json:"voice"`
	ValidationScore float64    `json:"validation_score"`
	CreatedAt       time.Time  `json:"created_at"`
}

// StoredResponse is a generated reply kept for the business inbox view.
type StoredResponse struct {
	ID                  string          `json:"id"`
	BusinessID          string          `json:"business_id"`
	InteractionID       string          `json:"interaction_id"`
	Platform            Platform        `json:"platform"`
	Type                InteractionType `json:"type"`
	Response            string          `json:"response"`
	OverallScore        float64         `json:"overall_score"`
	Model               string          `json:"model"`
	RequiresHumanReview bool            `json:"requires_human_review"`
	CreatedAt           time.Time       `json:"created_at"`
}
