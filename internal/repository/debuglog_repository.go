package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/route-simplex/internal/models"
)

// DebugLogRepository handles database operations for the debug log
type DebugLogRepository struct {
	db *sql.DB
}

// NewDebugLogRepository creates a new debug log repository
func NewDebugLogRepository(db *sql.DB) *DebugLogRepository {
	return &DebugLogRepository{db: db}
}

// Append stores one debug payload. Empty payloads are ignored.
func (r *DebugLogRepository) Append(sessionID, requestType, message string) error {
	if message == "" {
		return nil
	}
	_, err := r.db.Exec(
		"INSERT INTO debug_log (session_id, request_type, message) VALUES (?, ?, ?)",
		sessionID, requestType, message,
	)
	if err != nil {
		return fmt.Errorf("failed to append debug log: %w", err)
	}
	return nil
}

// List returns the entries of a session in insertion order
func (r *DebugLogRepository) List(sessionID string) ([]models.DebugLogEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, request_type, message, created_at
		FROM debug_log WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query debug log: %w", err)
	}
	defer rows.Close()

	entries := []models.DebugLogEntry{}
	for rows.Next() {
		var e models.DebugLogEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.RequestType, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debug log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read debug log: %w", err)
	}

	return entries, nil
}

// Visible reports whether the debug log panel is shown for a session
func (r *DebugLogRepository) Visible(sessionID string) (bool, error) {
	var visible bool
	err := r.db.QueryRow("SELECT visible FROM debug_log_visibility WHERE session_id = ?", sessionID).Scan(&visible)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get debug log visibility: %w", err)
	}
	return visible, nil
}

// ToggleVisible flips the visibility of the debug log panel and returns
// the new value
func (r *DebugLogRepository) ToggleVisible(sessionID string) (bool, error) {
	_, err := r.db.Exec(
		`INSERT INTO debug_log_visibility (session_id, visible) VALUES (?, 1)
		ON CONFLICT(session_id) DO UPDATE SET visible = 1 - visible`,
		sessionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to toggle debug log visibility: %w", err)
	}
	return r.Visible(sessionID)
}

// DeleteSession drops everything stored for a session
func (r *DebugLogRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM debug_log WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete debug log: %w", err)
	}
	if _, err := r.db.Exec("DELETE FROM debug_log_visibility WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete debug log visibility: %w", err)
	}
	return nil
}
