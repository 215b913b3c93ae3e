package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/insights"
)

// RecommendationRepo implements insights.Repository against PostgreSQL.
type RecommendationRepo struct{ db *sql.DB }

// NewRecommendationRepo creates a Postgres-backed recommendation repository.
func NewRecommendationRepo(db *sql.DB) *RecommendationRepo { return &RecommendationRepo{db: db} }

const recommendationColumns = `
	id, account_id, batch_id, source_type, source_id, category, title,
	description, COALESCE(expected_impact,''), COALESCE(data_points,'[]'),
	COALESCE(action_data,'{}'), severity, confidence, status, created_at`

func (r *RecommendationRepo) OpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string) ([]domain.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recommendationColumns+`
		FROM optimizer_recommendations
		WHERE account_id = $1 AND source_type = $2 AND source_id = $3 AND status = 'open'
		ORDER BY severity ASC, created_at DESC
	`, accountID, source, sourceID)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer rows.Close()

	var out []domain.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecommendationRepo) FreshOpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string, maxAge time.Duration) ([]domain.Recommendation, bool, error) {
	recs, err := r.OpenBatch(ctx, accountID, source, sourceID)
	if err != nil {
		return nil, false, err
	}
	if len(recs) == 0 {
		return nil, false, nil
	}

	newest := recs[0].CreatedAt
	for _, rec := range recs[1:] {
		if rec.CreatedAt.After(newest) {
			newest = rec.CreatedAt
		}
	}
	if time.Since(newest) > maxAge {
		return recs, false, nil
	}
	return recs, true, nil
}

// ReplaceOpenBatch retires the triple's open recommendations and inserts
// recs in one transaction. The advisory lock serializes concurrent
// replacements of the same triple so two generators cannot interleave the
// supersede and insert steps.
func (r *RecommendationRepo) ReplaceOpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string, recs []domain.Recommendation) error {
	for i := range recs {
		if err := recs[i].Validate(); err != nil {
			return fmt.Errorf("batch rejected: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace batch: %w", err)
	}
	defer tx.Rollback()

	lockKey := fmt.Sprintf("%s|%s|%s", accountID, source, sourceID)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("acquire batch lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE optimizer_recommendations
		SET status = 'superseded'
		WHERE account_id = $1 AND source_type = $2 AND source_id = $3 AND status = 'open'
	`, accountID, source, sourceID); err != nil {
		return fmt.Errorf("supersede open batch: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		dataPoints, err := json.Marshal(rec.DataPoints)
		if err != nil {
			return fmt.Errorf("marshal data points: %w", err)
		}
		actionData, err := json.Marshal(rec.Action)
		if err != nil {
			return fmt.Errorf("marshal action: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO optimizer_recommendations
				(id, account_id, batch_id, source_type, source_id, category, title,
				 description, expected_impact, data_points, action_data,
				 severity, confidence, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, rec.ID, rec.AccountID, rec.BatchID, rec.Source, rec.SourceID,
			rec.Category, rec.Title, rec.Description, rec.ExpectedImpact,
			dataPoints, actionData, rec.Severity, rec.Confidence, rec.Status, rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace batch: %w", err)
	}
	return nil
}

func (r *RecommendationRepo) Apply(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error) {
	return r.resolve(ctx, recommendationID, actorID, notes, domain.StatusApplied, domain.ActionApplied)
}

func (r *RecommendationRepo) Dismiss(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error) {
	return r.resolve(ctx, recommendationID, actorID, notes, domain.StatusDismissed, domain.ActionDismissed)
}

// resolve performs the one-shot open -> applied/dismissed transition. The
// conditional UPDATE is the atomic read-modify-write; a second caller sees
// zero rows affected and gets the current status back in the error.
func (r *RecommendationRepo) resolve(ctx context.Context, id, actorID, notes string, to domain.RecommendationStatus, actionType domain.ActionType) (domain.Action, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Action{}, fmt.Errorf("begin resolve: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE optimizer_recommendations
		SET status = $1
		WHERE id = $2 AND status = 'open'
	`, to, id)
	if err != nil {
		return domain.Action{}, fmt.Errorf("resolve recommendation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Action{}, fmt.Errorf("resolve recommendation: %w", err)
	}
	if affected == 0 {
		var current domain.RecommendationStatus
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM optimizer_recommendations WHERE id = $1`, id,
		).Scan(&current)
		if err == sql.ErrNoRows {
			return domain.Action{}, insights.ErrNotFound
		}
		if err != nil {
			return domain.Action{}, fmt.Errorf("read recommendation status: %w", err)
		}
		return domain.Action{}, &insights.StateError{ID: id, Status: current}
	}

	action := domain.Action{
		ID:               uuid.NewString(),
		RecommendationID: id,
		ActorID:          actorID,
		AppliedAt:        time.Now().UTC(),
		Type:             actionType,
		Notes:            notes,
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO optimizer_actions
			(id, recommendation_id, actor_id, applied_at, action_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, action.ID, action.RecommendationID, action.ActorID, action.AppliedAt, action.Type, action.Notes); err != nil {
		return domain.Action{}, fmt.Errorf("record action: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Action{}, fmt.Errorf("commit resolve: %w", err)
	}
	return action, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (domain.Recommendation, error) {
	var (
		rec        domain.Recommendation
		dataPoints []byte
		actionData []byte
	)
	if err := row.Scan(
		&rec.ID, &rec.AccountID, &rec.BatchID, &rec.Source, &rec.SourceID,
		&rec.Category, &rec.Title, &rec.Description, &rec.ExpectedImpact,
		&dataPoints, &actionData, &rec.Severity, &rec.Confidence, &rec.Status, &rec.CreatedAt,
	); err != nil {
		return domain.Recommendation{}, fmt.Errorf("scan recommendation: %w", err)
	}
	if err := json.Unmarshal(dataPoints, &rec.DataPoints); err != nil {
		return domain.Recommendation{}, fmt.Errorf("decode data points: %w", err)
	}
	if err := json.Unmarshal(actionData, &rec.Action); err != nil {
		return domain.Recommendation{}, fmt.Errorf("decode action: %w", err)
	}
	return rec, nil
}
