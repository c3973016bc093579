package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// CreateSession stores a brand-new session. Its Version is stored as given.
func (s *Store) CreateSession(ctx context.Context, sess model.DraftSession) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(sess.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		"INSERT INTO draft_sessions (id, version, state, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.Version, string(state), toMillis(sess.CreatedAt), toMillis(sess.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// LoadSession returns the latest stored snapshot of a session.
func (s *Store) LoadSession(ctx context.Context, id string) (model.DraftSession, error) {
	if err := s.ready(ctx); err != nil {
		return model.DraftSession{}, err
	}
	var (
		version   int
		state     string
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT version, state, created_at, updated_at FROM draft_sessions WHERE id = ?", id,
	).Scan(&version, &state, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DraftSession{}, ErrNotFound
		}
		return model.DraftSession{}, fmt.Errorf("load session: %w", err)
	}
	var sess model.DraftSession
	if err := json.Unmarshal([]byte(state), &sess); err != nil {
		return model.DraftSession{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	sess.ID = id
	sess.Version = version
	sess.CreatedAt = fromMillis(createdAt)
	sess.UpdatedAt = fromMillis(updatedAt)
	if sess.Rosters == nil {
		sess.Rosters = map[int][]model.DraftedPlayer{}
	}
	return sess, nil
}

// SaveSession replaces the stored snapshot only when the stored version is
// still expectedVersion. sess.Version must already carry the new version.
func (s *Store) SaveSession(ctx context.Context, sess model.DraftSession, expectedVersion int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		"UPDATE draft_sessions SET version = ?, state = ?, updated_at = ? WHERE id = ? AND version = ?",
		sess.Version, string(state), toMillis(sess.UpdatedAt), sess.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save session rows: %w", err)
	}
	if n == 1 {
		return nil
	}
	var exists int
	err = s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM draft_sessions WHERE id = ?", sess.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("save session lookup: %w", err)
	}
	return ErrVersionConflict
}
