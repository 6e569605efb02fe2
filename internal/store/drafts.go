package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Draft is an unpublished composer session. Tags holds the serialized tag
// field exactly as the composer produces it.
type Draft struct {
	ID         string
	Title      string
	Tags       string
	Body       string
	CategoryID int
	ReadLimit  int
	UpdatedAt  time.Time
}

// NewDraftID returns a fresh draft identifier.
func NewDraftID() string {
	return uuid.NewString()
}

// SaveDraft inserts or replaces d. An empty ID is assigned a new one, which
// is returned.
func (d *DB) SaveDraft(dr Draft) (string, error) {
	if dr.ID == "" {
		dr.ID = NewDraftID()
	} else if _, err := uuid.Parse(dr.ID); err != nil {
		return "", fmt.Errorf("invalid draft id %q: %w", dr.ID, err)
	}
	if dr.UpdatedAt.IsZero() {
		dr.UpdatedAt = time.Now().UTC()
	}
	_, err := d.Exec(`INSERT INTO drafts (id, title, tags, body, category_id, read_limit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			tags = excluded.tags,
			body = excluded.body,
			category_id = excluded.category_id,
			read_limit = excluded.read_limit,
			updated_at = excluded.updated_at`,
		dr.ID, dr.Title, dr.Tags, dr.Body, dr.CategoryID, dr.ReadLimit, dr.UpdatedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("saving draft: %w", err)
	}
	return dr.ID, nil
}

// Draft loads one draft by id.
func (d *DB) Draft(id string) (*Draft, error) {
	row := d.QueryRow(`SELECT id, title, tags, body, category_id, read_limit, updated_at
		FROM drafts WHERE id = ?`, id)
	return scanDraft(row)
}

// LatestDraft returns the most recently updated draft.
func (d *DB) LatestDraft() (*Draft, error) {
	row := d.QueryRow(`SELECT id, title, tags, body, category_id, read_limit, updated_at
		FROM drafts ORDER BY updated_at DESC LIMIT 1`)
	return scanDraft(row)
}

// Drafts lists drafts, newest first.
func (d *DB) Drafts() ([]Draft, error) {
	rows, err := d.Query(`SELECT id, title, tags, body, category_id, read_limit, updated_at
		FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		dr, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dr)
	}
	return out, rows.Err()
}

// DeleteDraft removes a draft. Deleting a missing draft is not an error.
func (d *DB) DeleteDraft(id string) error {
	if _, err := d.Exec(`DELETE FROM drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(s scanner) (*Draft, error) {
	var dr Draft
	err := s.Scan(&dr.ID, &dr.Title, &dr.Tags, &dr.Body, &dr.CategoryID, &dr.ReadLimit, &dr.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	return &dr, nil
}
