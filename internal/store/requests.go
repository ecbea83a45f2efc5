package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RequestRecord is one saved API playground request with its response.
type RequestRecord struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body,omitempty"`
	Status    int               `json:"status"`
	Response  string            `json:"response,omitempty"`
	ElapsedMs int64             `json:"elapsed_ms"`
	CreatedAt int64             `json:"created_at"`
}

// InsertRequest saves a playground request and its response to the user's
// history. The record's ID and CreatedAt are assigned here.
func (s *Store) InsertRequest(ctx context.Context, rec *RequestRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixMilli()
	}

	headers, err := json.Marshal(rec.Headers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO request_history (id, user_id, method, url, headers, body, status, response, elapsed_ms, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.UserID, rec.Method, rec.URL, string(headers), rec.Body,
		rec.Status, rec.Response, rec.ElapsedMs, rec.CreatedAt,
	)

	return err
}

// ListRequests returns a user's playground history, most recent first.
func (s *Store) ListRequests(ctx context.Context, userID string, limit int) ([]*RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, method, url, headers, body, status, response, elapsed_ms, created_at
		FROM request_history WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*RequestRecord

	for rows.Next() {
		rec := &RequestRecord{}

		var headers string

		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Method, &rec.URL, &headers,
			&rec.Body, &rec.Status, &rec.Response, &rec.ElapsedMs, &rec.CreatedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(headers), &rec.Headers); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
