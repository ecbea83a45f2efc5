package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ComparisonRecord is a named grouping of previously analyzed sites.
type ComparisonRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	// Sites holds the member analyses when loaded via GetComparison.
	Sites []*AnalysisRecord `json:"sites,omitempty"`
}

// InsertComparison creates a named comparison over existing analysis records.
// Every analysis ID must belong to the same user.
func (s *Store) InsertComparison(ctx context.Context, userID, name string, analysisIDs []string) (*ComparisonRecord, error) {
	now := time.Now().UnixMilli()
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO comparisons (id, user_id, name, created_at) VALUES (?,?,?,?)`,
		id, userID, name, now,
	); err != nil {
		return nil, err
	}

	for _, analysisID := range analysisIDs {
		var owner string

		err := tx.QueryRowContext(ctx, `SELECT user_id FROM analyses WHERE id = ?`, analysisID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return nil, ErrAnalysisNotFound
		}
		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comparison_sites (comparison_id, analysis_id, added_at) VALUES (?,?,?)`,
			id, analysisID, now,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetComparison(ctx, userID, id)
}

// GetComparison retrieves a comparison with its member analyses, or nil when
// absent or owned by another user.
func (s *Store) GetComparison(ctx context.Context, userID, id string) (*ComparisonRecord, error) {
	rec := &ComparisonRecord{}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at FROM comparisons
		WHERE id = ? AND user_id = ?`, id, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+analysisColumns+` FROM analyses
		WHERE id IN (SELECT analysis_id FROM comparison_sites WHERE comparison_id = ?)
		ORDER BY domain`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		site, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}

		rec.Sites = append(rec.Sites, site)
	}

	return rec, rows.Err()
}

// ListComparisons returns a user's comparisons, most recent first, without
// member analyses.
func (s *Store) ListComparisons(ctx context.Context, userID string) ([]*ComparisonRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at FROM comparisons
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*ComparisonRecord

	for rows.Next() {
		rec := &ComparisonRecord{}
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.CreatedAt); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// AddComparisonSite adds an analysis to an existing comparison.
func (s *Store) AddComparisonSite(ctx context.Context, userID, comparisonID, analysisID string) error {
	comparison, err := s.GetComparison(ctx, userID, comparisonID)
	if err != nil {
		return err
	}
	if comparison == nil {
		return ErrComparisonNotFound
	}

	analysis, err := s.GetAnalysis(ctx, analysisID)
	if err != nil {
		return err
	}
	if analysis == nil || analysis.UserID != userID {
		return ErrAnalysisNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO comparison_sites (comparison_id, analysis_id, added_at)
		VALUES (?,?,?)`,
		comparisonID, analysisID, time.Now().UnixMilli(),
	)

	return err
}

// RemoveComparisonSite removes an analysis from a comparison.
func (s *Store) RemoveComparisonSite(ctx context.Context, userID, comparisonID, analysisID string) error {
	comparison, err := s.GetComparison(ctx, userID, comparisonID)
	if err != nil {
		return err
	}
	if comparison == nil {
		return ErrComparisonNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM comparison_sites WHERE comparison_id = ? AND analysis_id = ?`,
		comparisonID, analysisID,
	)

	return err
}

// DeleteComparison removes a comparison and its membership rows.
func (s *Store) DeleteComparison(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM comparisons WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrComparisonNotFound
	}

	return nil
}
