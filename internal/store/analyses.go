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

// AnalysisRecord is the persisted form of an analysis result, keyed by
// (user, domain) with a search counter maintained by the upsert.
type AnalysisRecord struct {
	ID           string                   `json:"id"`
	UserID       string                   `json:"user_id"`
	Domain       string                   `json:"domain"`
	URL          string                   `json:"url"`
	Title        string                   `json:"title,omitempty"`
	Description  string                   `json:"description,omitempty"`
	Technologies []types.Technology       `json:"technologies"`
	Headers      map[string]string        `json:"headers"`
	Performance  types.PerformanceMetrics `json:"performance"`
	Security     types.SecurityScore      `json:"security"`
	SEO          types.SEOScore           `json:"seo"`
	StatusCode   int                      `json:"status_code"`
	LoadTime     int64                    `json:"load_time_ms"`
	SearchCount  int                      `json:"search_count"`
	LastAnalyzed int64                    `json:"last_analyzed"`
	CreatedAt    int64                    `json:"created_at"`
}

// UpsertAnalysis persists an analysis result for a user. An existing record
// for the same (user, domain) is patched field by field with the fresh
// result, its search counter incremented and last_analyzed updated; otherwise
// a new record is inserted with search_count 1. Returns the stored record.
func (s *Store) UpsertAnalysis(ctx context.Context, userID string, result *types.AnalysisResult) (*AnalysisRecord, error) {
	now := time.Now().UnixMilli()

	technologies, err := json.Marshal(result.Technologies)
	if err != nil {
		return nil, err
	}

	headers, err := json.Marshal(result.Headers)
	if err != nil {
		return nil, err
	}

	performance, err := json.Marshal(result.Performance)
	if err != nil {
		return nil, err
	}

	security, err := json.Marshal(result.Security)
	if err != nil {
		return nil, err
	}

	seo, err := json.Marshal(result.SEO)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetAnalysisByDomain(ctx, userID, result.Domain)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Explicit field-by-field patch; the counter increment is computed
		// from the prior value, outside the merge.
		_, err = s.db.ExecContext(ctx, `
			UPDATE analyses
			SET url = ?, title = ?, description = ?, technologies = ?, headers = ?,
			    performance = ?, security = ?, seo = ?, status_code = ?, load_time_ms = ?,
			    search_count = ?, last_analyzed = ?
			WHERE id = ?`,
			result.URL, result.Title, result.Description, string(technologies), string(headers),
			string(performance), string(security), string(seo), result.StatusCode, result.LoadTime,
			existing.SearchCount+1, now, existing.ID,
		)
		if err != nil {
			return nil, err
		}

		return s.GetAnalysis(ctx, existing.ID)
	}

	id := uuid.NewString()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, user_id, domain, url, title, description, technologies,
		                      headers, performance, security, seo, status_code, load_time_ms,
		                      search_count, last_analyzed, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,1,?,?)`,
		id, userID, result.Domain, result.URL, result.Title, result.Description, string(technologies),
		string(headers), string(performance), string(security), string(seo), result.StatusCode,
		result.LoadTime, now, now,
	)
	if err != nil {
		return nil, err
	}

	return s.GetAnalysis(ctx, id)
}

const analysisColumns = `id, user_id, domain, url, title, description, technologies,
	headers, performance, security, seo, status_code, load_time_ms,
	search_count, last_analyzed, created_at`

// GetAnalysis retrieves an analysis record by ID, or nil when absent.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	return scanAnalysis(row)
}

// GetAnalysisByDomain retrieves a user's analysis record for a domain, or nil
// when absent.
func (s *Store) GetAnalysisByDomain(ctx context.Context, userID, domain string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE user_id = ? AND domain = ?`, userID, domain)

	return scanAnalysis(row)
}

// ListAnalyses returns a user's analysis records ordered by most recently
// analyzed.
func (s *Store) ListAnalyses(ctx context.Context, userID string, limit int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses
		 WHERE user_id = ? ORDER BY last_analyzed DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*AnalysisRecord

	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{}

	var technologies, headers, performance, security, seo string

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Domain, &rec.URL, &rec.Title, &rec.Description,
		&technologies, &headers, &performance, &security, &seo,
		&rec.StatusCode, &rec.LoadTime, &rec.SearchCount, &rec.LastAnalyzed, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(technologies), &rec.Technologies); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(headers), &rec.Headers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(performance), &rec.Performance); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(security), &rec.Security); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(seo), &rec.SEO); err != nil {
		return nil, err
	}

	return rec, nil
}
