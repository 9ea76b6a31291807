// Package repo provides postgres access for capsules
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"echobox/internal/modkit/repokit"
)

// Repo defines the repository contract for capsules
type Repo interface {
	Insert(ctx context.Context, row RowCapsule) error
	GetByID(ctx context.Context, id, userID string) (RowCapsule, bool, error)
	ListByUser(ctx context.Context, userID, status string, limit int) ([]RowCapsule, error)
	UpcomingByUser(ctx context.Context, userID string, from, until time.Time) ([]RowCapsule, error)
	MarkUnlocked(ctx context.Context, id string, at time.Time) (bool, error)
	UpdateLocked(ctx context.Context, row RowCapsule) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DueLocked(ctx context.Context, now time.Time, batch int) ([]RowCapsule, error)
}

// RowCapsule represents a capsule row from the database
// all timestamps are UTC
type RowCapsule struct {
	ID                string
	UserID            string
	SongID            string
	EmotionText       string
	ScheduledUnlockAt time.Time
	IsUnlocked        bool
	UnlockedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const capsuleCols = `
id::text, user_id::text, song_id::text, emotion_text,
scheduled_unlock_at, is_unlocked, unlocked_at, created_at, updated_at
`

func scanCapsule(sc interface{ Scan(...any) error }) (RowCapsule, error) {
	var row RowCapsule
	err := sc.Scan(
		&row.ID, &row.UserID, &row.SongID, &row.EmotionText,
		&row.ScheduledUnlockAt, &row.IsUnlocked, &row.UnlockedAt, &row.CreatedAt, &row.UpdatedAt,
	)
	return row, err
}

func (r *queries) Insert(ctx context.Context, row RowCapsule) error {
	const sql = `
insert into capsules (id, user_id, song_id, emotion_text, scheduled_unlock_at, is_unlocked, created_at, updated_at)
values ($1, $2, $3, $4, $5, false, $6, $6)
`
	_, err := r.q.Exec(ctx, sql,
		row.ID, row.UserID, row.SongID, row.EmotionText, row.ScheduledUnlockAt, row.CreatedAt,
	)
	return err
}

func (r *queries) GetByID(ctx context.Context, id, userID string) (RowCapsule, bool, error) {
	const sql = `
select ` + capsuleCols + `
from capsules
where id = $1 and user_id = $2
`
	row, err := scanCapsule(r.q.QueryRow(ctx, sql, id, userID))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return RowCapsule{}, false, nil
		}
		return RowCapsule{}, false, err
	}
	return row, true, nil
}

func (r *queries) ListByUser(ctx context.Context, userID, status string, limit int) ([]RowCapsule, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const sql = `
select ` + capsuleCols + `
from capsules
where user_id = $1
and ($2 = 'all' or $2 = '' or ($2 = 'locked' and not is_unlocked) or ($2 = 'unlocked' and is_unlocked))
order by created_at desc
limit $3
`
	return r.collect(ctx, sql, userID, status, limit)
}

func (r *queries) UpcomingByUser(ctx context.Context, userID string, from, until time.Time) ([]RowCapsule, error) {
	const sql = `
select ` + capsuleCols + `
from capsules
where user_id = $1
and not is_unlocked
and scheduled_unlock_at > $2
and scheduled_unlock_at <= $3
order by scheduled_unlock_at asc
`
	return r.collect(ctx, sql, userID, from, until)
}

// MarkUnlocked flips a capsule to unlocked only if it is still locked
// the returned bool is false when another caller won the race
func (r *queries) MarkUnlocked(ctx context.Context, id string, at time.Time) (bool, error) {
	const sql = `
update capsules
set is_unlocked = true, unlocked_at = $2, updated_at = $2
where id = $1 and is_unlocked = false
`
	tag, err := r.q.Exec(ctx, sql, id, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateLocked rewrites mutable fields while the capsule is still locked
func (r *queries) UpdateLocked(ctx context.Context, row RowCapsule) (bool, error) {
	const sql = `
update capsules
set song_id = $3, emotion_text = $4, scheduled_unlock_at = $5, updated_at = $6
where id = $1 and user_id = $2 and is_unlocked = false
`
	tag, err := r.q.Exec(ctx, sql,
		row.ID, row.UserID, row.SongID, row.EmotionText, row.ScheduledUnlockAt, row.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) Delete(ctx context.Context, id, userID string) (bool, error) {
	const sql = `delete from capsules where id = $1 and user_id = $2`
	tag, err := r.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// DueLocked returns locked capsules whose scheduled time has passed
// oldest due first so a bounded batch drains fairly
func (r *queries) DueLocked(ctx context.Context, now time.Time, batch int) ([]RowCapsule, error) {
	if batch <= 0 || batch > 1000 {
		batch = 100
	}
	const sql = `
select ` + capsuleCols + `
from capsules
where not is_unlocked and scheduled_unlock_at <= $1
order by scheduled_unlock_at asc
limit $2
`
	return r.collect(ctx, sql, now, batch)
}

func (r *queries) collect(ctx context.Context, sql string, args ...any) ([]RowCapsule, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowCapsule
	for rows.Next() {
		rr, err := scanCapsule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
