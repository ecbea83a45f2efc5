package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// Bulk job status values. Jobs transition pending -> completed even when
// every URL fails; per-URL errors live in the results.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// JobRecord is one persisted bulk analysis job.
type JobRecord struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	URLs      []string           `json:"urls"`
	Results   []types.BulkResult `json:"results"`
	Status    string             `json:"status"`
	CreatedAt int64              `json:"created_at"`
	UpdatedAt int64              `json:"updated_at"`
}

// InsertJob creates a pending bulk job for the given URLs and returns it.
func (s *Store) InsertJob(ctx context.Context, userID string, urls []string) (*JobRecord, error) {
	now := time.Now().UnixMilli()
	id := uuid.NewString()

	encoded, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bulk_jobs (id, user_id, urls, results, status, created_at, updated_at)
		VALUES (?,?,?,'[]',?,?,?)`,
		id, userID, string(encoded), JobStatusPending, now, now,
	)
	if err != nil {
		return nil, err
	}

	return s.GetJob(ctx, id)
}

// CompleteJob stores the per-URL results and marks the job completed.
func (s *Store) CompleteJob(ctx context.Context, id string, results []types.BulkResult) (*JobRecord, error) {
	encoded, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE bulk_jobs SET results = ?, status = ?, updated_at = ? WHERE id = ?`,
		string(encoded), JobStatusCompleted, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return nil, err
	}

	return s.GetJob(ctx, id)
}

// GetJob retrieves a bulk job by ID, or nil when absent.
func (s *Store) GetJob(ctx context.Context, id string) (*JobRecord, error) {
	rec := &JobRecord{}

	var urls, results string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, urls, results, status, created_at, updated_at
		FROM bulk_jobs WHERE id = ?`, id).Scan(
		&rec.ID, &rec.UserID, &urls, &results, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(urls), &rec.URLs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(results), &rec.Results); err != nil {
		return nil, err
	}

	return rec, nil
}
