// Package repo provides postgres access for songs
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"echobox/internal/modkit/repokit"
)

// Repo defines the repository contract for songs
type Repo interface {
	Insert(ctx context.Context, row RowSong) error
	GetByID(ctx context.Context, id string) (RowSong, bool, error)
	List(ctx context.Context, artist string, limit int) ([]RowSong, error)
}

// RowSong represents a song row from the database
type RowSong struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	CoverURL    string
	DurationSec int
	CreatedAt   time.Time
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

func (r *queries) Insert(ctx context.Context, row RowSong) error {
	const sql = `
insert into songs (id, title, artist, album, cover_url, duration_sec, created_at)
values ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.q.Exec(ctx, sql,
		row.ID, row.Title, row.Artist, row.Album, row.CoverURL, row.DurationSec, row.CreatedAt,
	)
	return err
}

func (r *queries) GetByID(ctx context.Context, id string) (RowSong, bool, error) {
	const sql = `
select id::text, title, artist, album, cover_url, duration_sec, created_at
from songs
where id = $1
`
	var row RowSong
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&row.ID, &row.Title, &row.Artist, &row.Album, &row.CoverURL, &row.DurationSec, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return RowSong{}, false, nil
		}
		return RowSong{}, false, err
	}
	return row, true, nil
}

func (r *queries) List(ctx context.Context, artist string, limit int) ([]RowSong, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const sql = `
select id::text, title, artist, album, cover_url, duration_sec, created_at
from songs
where ($1 = '' or artist = $1)
order by created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, artist, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowSong
	for rows.Next() {
		var rr RowSong
		if err := rows.Scan(
			&rr.ID, &rr.Title, &rr.Artist, &rr.Album, &rr.CoverURL, &rr.DurationSec, &rr.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
