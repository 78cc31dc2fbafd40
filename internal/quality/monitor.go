package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialbot-ai/backend/internal/models"
)

// MetricStore is the append-only home of quality metrics. Reports read the
// store once per call so aggregates stay consistent under concurrent appends.
type MetricStore interface {
	AppendMetric(ctx context.Context, m models.QualityMetric) error
	ListMetrics(ctx context.Context, businessID string, since time.Time) ([]models.QualityMetric, error)
}

type Thresholds struct {
	Excellent  float64
	Good       float64
	Acceptable float64
	Poor       float64
}

var DefaultThresholds = Thresholds{
	Excellent:  9.0,
	Good:       7.5,
	Acceptable: 6.0,
	Poor:       4.0,
}

// DegradationSlope is the trend value below which a degradation alert fires.
const DegradationSlope = -0.5

type Report struct {
	AverageQuality        float64  `json:"average_quality"`
	ApprovalRate          float64  `json:"approval_rate"`
	AverageProcessingTime float64  `json:"average_processing_time"`
	QualityTrend          float64  `json:"quality_trend"`
	IssueCount            int      `json:"issue_count"`
	Recommendations       []string `json:"recommendations"`
	SampleSize            int      `json:"sample_size"`
}

// Monitor records per-business quality metrics and produces aggregate
// reports with trend detection.
type Monitor struct {
	Store      MetricStore
	Thresholds Thresholds
	Logger     zerolog.Logger
}

func NewMonitor(store MetricStore, logger zerolog.Logger) *Monitor {
	return &Monitor{
		Store:      store,
		Thresholds: DefaultThresholds,
		Logger:     logger,
	}
}

// Track appends one metric and runs a trend check over the past week.
// A failing trend check is logged, never surfaced: the append is the
// contract, the alert is advisory.
func (m *Monitor) Track(ctx context.Context, metric models.QualityMetric) error {
	if err := m.Store.AppendMetric(ctx, metric); err != nil {
		return err
	}

	if metric.QualityScore < m.Thresholds.Acceptable {
		m.Logger.Warn().
			Str("business_id", metric.BusinessID).
			Str("response_id", metric.ResponseID).
			Float64("score", metric.QualityScore).
			Msg("quality alert: response scored below acceptable")
	}

	recent, err := m.Store.ListMetrics(ctx, metric.BusinessID, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		m.Logger.Warn().Err(err).Msg("trend check read failed")
		return nil
	}
	if trend := Trend(scoresOf(recent)); trend < DegradationSlope {
		m.Logger.Warn().
			Str("business_id", metric.BusinessID).
			Float64("trend", trend).
			Msg("quality degradation alert")
	}
	return nil
}

// GetReport aggregates metrics for the timeframe window (day, week or
// month) into a single snapshot-consistent report.
func (m *Monitor) GetReport(ctx context.Context, businessID, timeframe string) (Report, error) {
	window, err := timeframeWindow(timeframe)
	if err != nil {
		return Report{}, err
	}

	metrics, err := m.Store.ListMetrics(ctx, businessID, time.Now().Add(-window))
	if err != nil {
		return Report{}, err
	}

	scores := scoresOf(metrics)
	approvals := make([]float64, 0, len(metrics))
	times := make([]float64, 0, len(metrics))
	issueCount := 0
	for _, metric := range metrics {
		approvals = append(approvals, metric.HumanApprovalRate)
		times = append(times, metric.ProcessingTime)
		if metric.QualityScore < m.Thresholds.Acceptable {
			issueCount++
		}
	}

	return Report{
		AverageQuality:        mean(scores),
		ApprovalRate:          mean(approvals),
		AverageProcessingTime: mean(times),
		QualityTrend:          Trend(scores),
		IssueCount:            issueCount,
		Recommendations:       m.recommendations(mean(scores), mean(approvals), len(metrics)),
		SampleSize:            len(metrics),
	}, nil
}

func (m *Monitor) recommendations(avgQuality, avgApproval float64, sampleSize int) []string {
	recs := []string{}
	if sampleSize == 0 {
		return recs
	}
	if avgQuality < m.Thresholds.Good {
		recs = append(recs,
			"Review and update brand voice training data",
			"Review and improve system prompts",
		)
	}
	if avgApproval < 0.8 {
		recs = append(recs,
			"Increase the quality threshold for auto-posting",
			"Add more specific brand voice guidelines",
		)
	}
	return recs
}

func timeframeWindow(timeframe string) (time.Duration, error) {
	switch timeframe {
	case "day":
		return 24 * time.Hour, nil
	case "week":
		return 7 * 24 * time.Hour, nil
	case "month":
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown timeframe %q", timeframe)
	}
}

func scoresOf(metrics []models.QualityMetric) []float64 {
	scores := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		scores = append(scores, m.QualityScore)
	}
	return scores
}
