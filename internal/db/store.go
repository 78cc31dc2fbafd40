package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socialbot-ai/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// EnsureSchema creates the tables on service start if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS brand_voices (
			business_id      TEXT NOT NULL,
			version          INT NOT NULL,
			voice            JSONB NOT NULL,
			validation_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at       TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (business_id, version)
		);
		CREATE TABLE IF NOT EXISTS quality_metrics (
			id                    TEXT PRIMARY KEY,
			response_id           TEXT NOT NULL,
			business_id           TEXT NOT NULL,
			quality_score         DOUBLE PRECISION NOT NULL,
			human_approval_rate   DOUBLE PRECISION NOT NULL,
			customer_satisfaction DOUBLE PRECISION,
			edit_distance         INT,
			model                 TEXT NOT NULL,
			processing_time       DOUBLE PRECISION NOT NULL,
			created_at            TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS quality_metrics_business_created
			ON quality_metrics (business_id, created_at);
		CREATE TABLE IF NOT EXISTS responses (
			id                    TEXT PRIMARY KEY,
			business_id           TEXT NOT NULL,
			interaction_id        TEXT NOT NULL,
			platform              TEXT NOT NULL,
			type                  TEXT NOT NULL,
			response              TEXT NOT NULL,
			overall_score         DOUBLE PRECISION NOT NULL,
			model                 TEXT NOT NULL,
			requires_human_review BOOLEAN NOT NULL,
			created_at            TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS responses_business_created
			ON responses (business_id, created_at);
	`)
	return err
}

func (s *Store) SaveBrandVoice(ctx context.Context, rec models.BrandVoiceRecord) error {
	voice, err := json.Marshal(rec.Voice)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO brand_voices (business_id, version, voice, validation_score, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, rec.BusinessID, rec.Version, voice, rec.ValidationScore, rec.CreatedAt)
	return err
}

// GetBrandVoice returns the latest stored version for the business.
func (s *Store) GetBrandVoice(ctx context.Context, businessID string) (models.BrandVoiceRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT business_id, version, voice, validation_score, created_at
		FROM brand_voices
		WHERE business_id = $1
		ORDER BY version DESC
		LIMIT 1
	`, businessID)

	var rec models.BrandVoiceRecord
	var voice []byte
	if err := row.Scan(&rec.BusinessID, &rec.Version, &voice, &rec.ValidationScore, &rec.CreatedAt); err != nil {
		return models.BrandVoiceRecord{}, err
	}
	if err := json.Unmarshal(voice, &rec.Voice); err != nil {
		return models.BrandVoiceRecord{}, err
	}
	return rec, nil
}

func (s *Store) AppendMetric(ctx context.Context, m models.QualityMetric) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO quality_metrics (id, response_id, business_id, quality_score, human_approval_rate,
			customer_satisfaction, edit_distance, model, processing_time, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, m.ID, m.ResponseID, m.BusinessID, m.QualityScore, m.HumanApprovalRate,
		m.CustomerSatisfaction, m.EditDistance, m.Model, m.ProcessingTime, m.CreatedAt)
	return err
}

// ListMetrics returns metrics for one business since the cutoff, oldest
// first so the caller's trend runs in sequence order.
func (s *Store) ListMetrics(ctx context.Context, businessID string, since time.Time) ([]models.QualityMetric, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, response_id, business_id, quality_score, human_approval_rate,
			customer_satisfaction, edit_distance, model, processing_time, created_at
		FROM quality_metrics
		WHERE business_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, businessID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QualityMetric
	for rows.Next() {
		var m models.QualityMetric
		if err := rows.Scan(&m.ID, &m.ResponseID, &m.BusinessID, &m.QualityScore, &m.HumanApprovalRate,
			&m.CustomerSatisfaction, &m.EditDistance, &m.Model, &m.ProcessingTime, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) InsertResponse(ctx context.Context, r models.StoredResponse) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO responses (id, business_id, interaction_id, platform, type, response,
			overall_score, model, requires_human_review, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, r.ID, r.BusinessID, r.InteractionID, string(r.Platform), string(r.Type), r.Response,
		r.OverallScore, r.Model, r.RequiresHumanReview, r.CreatedAt)
	return err
}

func (s *Store) ListResponses(ctx context.Context, businessID string, limit int) ([]models.StoredResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, business_id, interaction_id, platform, type, response,
			overall_score, model, requires_human_review, created_at
		FROM responses
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StoredResponse
	for rows.Next() {
		var r models.StoredResponse
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.InteractionID, &r.Platform, &r.Type, &r.Response,
			&r.OverallScore, &r.Model, &r.RequiresHumanReview, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
