package training

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/socialbot-ai/backend/internal/ai"
	"github.com/socialbot-ai/backend/internal/models"
	"github.com/socialbot-ai/backend/internal/respond"
)

// VoiceStore persists versioned brand voice profiles per business.
type VoiceStore interface {
	SaveBrandVoice(ctx context.Context, rec models.BrandVoiceRecord) error
	GetBrandVoice(ctx context.Context, businessID string) (models.BrandVoiceRecord, error)
}

// scenario is one canned validation case a freshly trained profile is
// scored against before it is stored.
type scenario struct {
	kind        string
	interaction models.Interaction
}

func validationScenarios() []scenario {
	return []scenario{
		{kind: "positive_review", interaction: models.Interaction{
			ID: "scenario-positive", Platform: models.PlatformGoogle, Type: models.TypeReview,
			Content: "Amazing service! Best restaurant in town!", CustomerName: "Sample Customer",
		}},
		{kind: "negative_review", interaction: models.Interaction{
			ID: "scenario-negative", Platform: models.PlatformGoogle, Type: models.TypeReview,
			Content: "Food was cold and service was slow. Very disappointed.", CustomerName: "Sample Customer",
		}},
		{kind: "question", interaction: models.Interaction{
			ID: "scenario-question", Platform: models.PlatformFacebook, Type: models.TypeComment,
			Content: "Do you have gluten-free options?", CustomerName: "Sample Customer",
		}},
		{kind: "complaint", interaction: models.Interaction{
			ID: "scenario-complaint", Platform: models.PlatformGoogle, Type: models.TypeMessage,
			Content: "I had to wait 45 minutes for my order. This is unacceptable.", CustomerName: "Sample Customer",
		}},
	}
}

// Trainer derives brand voice profiles from approved responses and business
// content through a sequence of structured model calls.
type Trainer struct {
	Client    ai.Client
	Model     string
	Engine    *respond.Engine
	Store     VoiceStore
	Validator *validator.Validate
	Logger    zerolog.Logger
}

// Train runs the full derivation: analyze approved responses (skipped when
// there are none), analyze business content, synthesize a unified profile,
// score it against the canned scenarios and persist it as a new version.
func (t *Trainer) Train(ctx context.Context, businessID string, data models.TrainingData) (models.BrandVoiceRecord, error) {
	if err := t.Validator.Struct(data); err != nil {
		return models.BrandVoiceRecord{}, fmt.Errorf("%w: %v", respond.ErrInvalidInput, err)
	}

	var responseAnalysis *models.BrandVoiceAnalysis
	if len(data.ApprovedResponses) > 0 {
		analysis, err := t.analyzeApprovedResponses(ctx, data.ApprovedResponses)
		if err != nil {
			return models.BrandVoiceRecord{}, err
		}
		responseAnalysis = &analysis
	}

	contentAnalysis, err := t.analyzeBusinessContent(ctx, data.BusinessDescription, data.ExistingContent)
	if err != nil {
		return models.BrandVoiceRecord{}, err
	}

	synthesized, err := t.synthesize(ctx, responseAnalysis, contentAnalysis, data.OwnerInput)
	if err != nil {
		return models.BrandVoiceRecord{}, err
	}

	voice := buildVoice(data, synthesized)

	score, err := t.validateVoice(ctx, voice)
	if err != nil {
		return models.BrandVoiceRecord{}, err
	}

	version := 1
	if current, err := t.Store.GetBrandVoice(ctx, businessID); err == nil {
		version = current.Version + 1
	}

	rec := models.BrandVoiceRecord{
		BusinessID:      businessID,
		Version:         version,
		Voice:           voice,
		ValidationScore: score,
		CreatedAt:       time.Now().UTC(),
	}
	if err := t.Store.SaveBrandVoice(ctx, rec); err != nil {
		return models.BrandVoiceRecord{}, err
	}
	t.Logger.Info().
		Str("business_id", businessID).
		Int("version", version).
		Float64("validation_score", score).
		Msg("brand voice trained")
	return rec, nil
}

// Update re-analyzes newly approved responses and merges them into the
// stored profile. Newer analysis overrides tone and style; phrase lists
// are unioned with the current profile first.
func (t *Trainer) Update(ctx context.Context, businessID string, newApprovedResponses []string) (models.BrandVoiceRecord, error) {
	current, err := t.Store.GetBrandVoice(ctx, businessID)
	if err != nil {
		return models.BrandVoiceRecord{}, err
	}
	if len(newApprovedResponses) == 0 {
		return current, nil
	}

	analysis, err := t.analyzeApprovedResponses(ctx, newApprovedResponses)
	if err != nil {
		return models.BrandVoiceRecord{}, err
	}

	rec := models.BrandVoiceRecord{
		BusinessID:      businessID,
		Version:         current.Version + 1,
		Voice:           MergeVoice(current.Voice, analysis),
		ValidationScore: current.ValidationScore,
		CreatedAt:       time.Now().UTC(),
	}
	if err := t.Store.SaveBrandVoice(ctx, rec); err != nil {
		return models.BrandVoiceRecord{}, err
	}
	t.Logger.Info().
		Str("business_id", businessID).
		Int("version", rec.Version).
		Msg("brand voice updated")
	return rec, nil
}

func (t *Trainer) analyzeApprovedResponses(ctx context.Context, responses []string) (models.BrandVoiceAnalysis, error) {
	var analysis models.BrandVoiceAnalysis
	err := t.completeJSON(ctx, buildApprovedResponsesPrompt(responses), &analysis)
	return analysis, err
}

func (t *Trainer) analyzeBusinessContent(ctx context.Context, description string, content []string) (models.BrandVoiceAnalysis, error) {
	var analysis models.BrandVoiceAnalysis
	err := t.completeJSON(ctx, buildBusinessContentPrompt(description, content), &analysis)
	return analysis, err
}

func (t *Trainer) synthesize(ctx context.Context, responseAnalysis *models.BrandVoiceAnalysis, contentAnalysis models.BrandVoiceAnalysis, ownerInput string) (models.BrandVoiceAnalysis, error) {
	var analysis models.BrandVoiceAnalysis
	err := t.completeJSON(ctx, buildSynthesisPrompt(responseAnalysis, contentAnalysis, ownerInput), &analysis)
	return analysis, err
}

// validateVoice generates and scores one reply per canned scenario with the
// candidate profile; the mean overall score is recorded alongside it.
func (t *Trainer) validateVoice(ctx context.Context, voice models.BrandVoice) (float64, error) {
	var total float64
	scenarios := validationScenarios()
	for _, sc := range scenarios {
		analysis, err := t.Engine.Analyze(ctx, sc.interaction)
		if err != nil {
			return 0, err
		}
		text, err := t.Engine.GenerateOne(ctx, t.Model, t.Engine.BaseTemperature, sc.interaction, voice, analysis)
		if err != nil {
			return 0, err
		}
		q, err := t.Engine.Assess(ctx, text, sc.interaction, voice)
		if err != nil {
			return 0, err
		}
		t.Logger.Debug().
			Str("scenario", sc.kind).
			Float64("score", q.OverallScore).
			Msg("voice validation scenario scored")
		total += q.OverallScore
	}
	return total / float64(len(scenarios)), nil
}

func (t *Trainer) completeJSON(ctx context.Context, prompt string, out any) error {
	raw, err := t.Client.Complete(ctx, ai.Request{
		Model:      t.Model,
		Prompt:     prompt,
		JSONOutput: true,
	})
	if err != nil {
		return err
	}
	if err := ai.DecodeJSON(raw, out); err != nil {
		return &ai.ModelError{Model: t.Model, Err: err}
	}
	return nil
}

func buildVoice(data models.TrainingData, analysis models.BrandVoiceAnalysis) models.BrandVoice {
	signature := ""
	if len(analysis.ClosingPhrases) > 0 {
		signature = analysis.ClosingPhrases[0]
	}
	return models.BrandVoice{
		BusinessName:     data.BusinessName,
		BusinessType:     data.BusinessType,
		Personality:      analysis.Personality,
		Tone:             analysis.Tone,
		Values:           analysis.Values,
		ResponseStyle:    analysis.CommunicationStyle,
		DoNotSay:         analysis.DoNotSay,
		PreferredPhrases: unionStrings(analysis.CommonPhrases, analysis.PreferredGreetings),
		Signature:        signature,
	}
}
