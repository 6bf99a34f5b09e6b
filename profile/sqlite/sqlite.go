// Package sqlite provides a durable profile.Store backed by SQLite. Profiles
// are stored as JSON documents keyed by user id, which keeps the schema
// stable while the profile model evolves.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	user_id    TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store is a SQLite-backed profile.Store. It fulfils exactly the same
// contract as the in-memory store: same merge semantics, same error kinds.
type Store struct {
	db *sql.DB
}

var _ profile.Store = (*Store)(nil)

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent mutation.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Create validates the request and inserts a new profile under a fresh id.
func (s *Store) Create(ctx context.Context, req profile.CreateRequest) (*profile.UserProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := profile.NewFromCreate(uuid.NewString(), req, time.Now().UTC())
	if err := s.insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a profile by id.
func (s *Store) Get(ctx context.Context, userID string) (*profile.UserProfile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM user_profiles WHERE user_id = ?`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return decode(doc)
}

// Update merges the partial request into the stored document.
func (s *Store) Update(ctx context.Context, userID string, req profile.UpdateRequest) (*profile.UserProfile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.ApplyUpdate(p, req, time.Now().UTC())
	if err := s.write(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a profile; unknown ids report core.ErrNotFound.
func (s *Store) Delete(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM user_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// List pages through profiles in user id order; cursor is the last id of
// the previous page.
func (s *Store) List(ctx context.Context, cursor string, limit int) ([]profile.Summary, string, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM user_profiles WHERE user_id > ? ORDER BY user_id LIMIT ?`,
		cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var summaries []profile.Summary
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, "", err
		}
		p, err := decode(doc)
		if err != nil {
			return nil, "", err
		}
		summaries = append(summaries, profile.SummaryOf(p))
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(summaries) == limit {
		next = summaries[len(summaries)-1].UserID
	}
	return summaries, next, nil
}

// TouchLastActive records the current time as the user's last activity.
func (s *Store) TouchLastActive(ctx context.Context, userID string) error {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.LastActive = &now
	return s.write(ctx, p)
}

// Put inserts or replaces a fully-formed profile (seeding/import path).
func (s *Store) Put(ctx context.Context, p *profile.UserProfile) error {
	if p.UserID == "" {
		return core.NewValidationError("user_id", "required field is missing")
	}
	c := p.Clone()
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.ProfileComplete = c.Complete()
	return s.upsert(ctx, c)
}

func (s *Store) insert(ctx context.Context, p *profile.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.UserID, string(doc), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, p *profile.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_profiles SET doc = ?, updated_at = ? WHERE user_id = ?`,
		string(doc), p.UpdatedAt, p.UserID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) upsert(ctx context.Context, p *profile.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.UserID, string(doc), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func decode(doc string) (*profile.UserProfile, error) {
	var p profile.UserProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}
