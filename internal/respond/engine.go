package respond

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/socialbot-ai/backend/internal/ai"
	"github.com/socialbot-ai/backend/internal/models"
)

// ErrInvalidInput marks a malformed interaction or brand voice. It is
// raised before any hosted-model call is made.
var ErrInvalidInput = errors.New("invalid input")

// Engine runs the analyze -> generate -> assess pipeline with the
// quality-threshold fallback policy on top.
type Engine struct {
	Client           ai.Client
	PrimaryModel     string
	FallbackModel    string
	QualityThreshold float64
	CandidateCount   int
	BaseTemperature  float64
	TemperatureStep  float64
	MaxTokens        int
	Validator        *validator.Validate
	Logger           zerolog.Logger
}

// Respond produces one final reply for the interaction. The primary model
// generates CandidateCount drafts at escalating temperatures, each draft is
// scored, and the best is kept. A best score below QualityThreshold triggers
// exactly one extra draft from the fallback model; the higher scorer of the
// two wins. The final result is flagged for human review whenever its score
// is still below the threshold.
func (e *Engine) Respond(ctx context.Context, interaction models.Interaction, voice models.BrandVoice) (models.GenerationResult, error) {
	start := time.Now()

	if err := e.Validator.Struct(interaction); err != nil {
		return models.GenerationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := e.Validator.Struct(voice); err != nil {
		return models.GenerationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	interaction.Rating = interaction.EffectiveRating()

	analysis, err := e.Analyze(ctx, interaction)
	if err != nil {
		return models.GenerationResult{}, err
	}

	candidates, err := e.generateCandidates(ctx, interaction, voice, analysis)
	if err != nil {
		return models.GenerationResult{}, err
	}

	qualities, kept, err := e.assessAll(ctx, candidates, interaction, voice)
	if err != nil {
		return models.GenerationResult{}, err
	}

	bestIdx := SelectBest(qualities)
	bestText := kept[bestIdx]
	bestQuality := qualities[bestIdx]
	model := e.PrimaryModel

	if bestQuality.OverallScore < e.QualityThreshold {
		fbText, fbQuality, fbErr := e.fallback(ctx, interaction, voice, analysis)
		if fbErr != nil {
			e.Logger.Warn().Err(fbErr).Msg("fallback generation failed, keeping primary result")
		} else if fbQuality.OverallScore > bestQuality.OverallScore {
			bestText = fbText
			bestQuality = fbQuality
			model = e.FallbackModel
		}
	}

	return models.GenerationResult{
		Response:            bestText,
		Quality:             bestQuality,
		Analysis:            analysis,
		Model:               model,
		RequiresHumanReview: bestQuality.OverallScore < e.QualityThreshold,
		ProcessingTime:      time.Since(start).Seconds(),
	}, nil
}

// Analyze classifies one interaction via a structured model call.
func (e *Engine) Analyze(ctx context.Context, interaction models.Interaction) (models.InteractionAnalysis, error) {
	var analysis models.InteractionAnalysis
	err := e.completeJSON(ctx, ai.Request{
		Model:      e.PrimaryModel,
		Prompt:     BuildAnalysisPrompt(interaction),
		JSONOutput: true,
	}, &analysis)
	return analysis, err
}

// Assess scores one candidate reply. It never modifies the candidate.
func (e *Engine) Assess(ctx context.Context, candidate string, interaction models.Interaction, voice models.BrandVoice) (models.ResponseQuality, error) {
	var quality models.ResponseQuality
	err := e.completeJSON(ctx, ai.Request{
		Model:      e.PrimaryModel,
		Prompt:     BuildAssessmentPrompt(candidate, interaction, voice),
		JSONOutput: true,
	}, &quality)
	return quality, err
}

// GenerateOne requests a single draft from the given model.
func (e *Engine) GenerateOne(ctx context.Context, model string, temperature float64, interaction models.Interaction, voice models.BrandVoice, analysis models.InteractionAnalysis) (string, error) {
	text, err := e.Client.Complete(ctx, ai.Request{
		Model:       model,
		System:      BuildSystemPrompt(voice, analysis),
		Prompt:      BuildUserPrompt(interaction, analysis),
		Temperature: temperature,
		MaxTokens:   e.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ai.ModelError{Model: model, Err: ai.ErrEmptyResponse}
	}
	return text, nil
}

// generateCandidates fans out CandidateCount concurrent drafts, each at an
// escalating temperature so later drafts are more exploratory. Failed drafts
// are dropped; the batch fails only when every draft fails.
func (e *Engine) generateCandidates(ctx context.Context, interaction models.Interaction, voice models.BrandVoice, analysis models.InteractionAnalysis) ([]string, error) {
	count := e.CandidateCount
	if count < 1 {
		count = 1
	}

	texts := make([]string, count)
	errs := make([]error, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			temp := e.BaseTemperature + float64(i)*e.TemperatureStep
			texts[i], errs[i] = e.GenerateOne(ctx, e.PrimaryModel, temp, interaction, voice, analysis)
		}(i)
	}
	wg.Wait()

	var candidates []string
	var firstErr error
	for i := 0; i < count; i++ {
		if errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			e.Logger.Warn().Err(errs[i]).Int("candidate", i).Msg("candidate generation failed")
			continue
		}
		candidates = append(candidates, texts[i])
	}
	if len(candidates) == 0 {
		return nil, firstErr
	}
	return candidates, nil
}

// assessAll fans out one assessment per candidate and joins before
// selection. Candidates whose assessment failed are dropped alongside
// their scores so the two slices stay index-aligned.
func (e *Engine) assessAll(ctx context.Context, candidates []string, interaction models.Interaction, voice models.BrandVoice) ([]models.ResponseQuality, []string, error) {
	qualities := make([]models.ResponseQuality, len(candidates))
	errs := make([]error, len(candidates))
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qualities[i], errs[i] = e.Assess(ctx, candidates[i], interaction, voice)
		}(i)
	}
	wg.Wait()

	var keptQualities []models.ResponseQuality
	var keptCandidates []string
	var firstErr error
	for i := range candidates {
		if errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			e.Logger.Warn().Err(errs[i]).Int("candidate", i).Msg("candidate assessment failed")
			continue
		}
		keptQualities = append(keptQualities, qualities[i])
		keptCandidates = append(keptCandidates, candidates[i])
	}
	if len(keptCandidates) == 0 {
		return nil, nil, firstErr
	}
	return keptQualities, keptCandidates, nil
}

func (e *Engine) fallback(ctx context.Context, interaction models.Interaction, voice models.BrandVoice, analysis models.InteractionAnalysis) (string, models.ResponseQuality, error) {
	text, err := e.GenerateOne(ctx, e.FallbackModel, e.BaseTemperature, interaction, voice, analysis)
	if err != nil {
		return "", models.ResponseQuality{}, err
	}
	quality, err := e.Assess(ctx, text, interaction, voice)
	if err != nil {
		return "", models.ResponseQuality{}, err
	}
	return text, quality, nil
}

// SelectBest returns the index of the quality with the maximum overall
// score. Ties resolve to the lowest index.
func SelectBest(qualities []models.ResponseQuality) int {
	bestIdx := 0
	for i, q := range qualities {
		if q.OverallScore > qualities[bestIdx].OverallScore {
			bestIdx = i
		}
	}
	return bestIdx
}

// completeJSON runs one structured call and decodes the response into out,
// validating it against the schema tags. Any decode or validation failure
// surfaces as a model error.
func (e *Engine) completeJSON(ctx context.Context, req ai.Request, out any) error {
	raw, err := e.Client.Complete(ctx, req)
	if err != nil {
		return err
	}
	if err := ai.DecodeJSON(raw, out); err != nil {
		return &ai.ModelError{Model: req.Model, Err: err}
	}
	if err := e.Validator.Struct(out); err != nil {
		return &ai.ModelError{Model: req.Model, Err: fmt.Errorf("%w: %v", ai.ErrInvalidOutput, err)}
	}
	return nil
}
