// Package service contains songs workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"echobox/internal/core/normalize"
	"echobox/internal/modkit/repokit"
	perr "echobox/internal/platform/errors"
	"echobox/internal/platform/ptime"
	"echobox/internal/services/api/songs/domain"
	"echobox/internal/services/api/songs/repo"
)

// Service defines the service contract for songs
type Service interface {
	domain.ServicePort
	domain.ResolverPort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	norm *normalize.Normalizer
	now  func() time.Time
}

// New creates a new songs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("songs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("songs.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		norm:   normalize.New(),
		now:    ptime.NowUTC,
	}
}

// Create registers a song in the catalog and returns the stored entry
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Song, error) {
	title := s.norm.Clean(in.Title)
	artist := s.norm.Clean(in.Artist)
	if title == "" {
		return domain.Song{}, perr.New(perr.ErrorCodeValidation, "title must not be empty")
	}
	if artist == "" {
		return domain.Song{}, perr.New(perr.ErrorCodeValidation, "artist must not be empty")
	}

	row := repo.RowSong{
		ID:          uuid.NewString(),
		Title:       title,
		Artist:      artist,
		Album:       s.norm.Clean(in.Album),
		CoverURL:    in.CoverURL,
		DurationSec: in.DurationSec,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Song{}, err
	}
	return toSong(row), nil
}

// Get returns a single catalog entry by id
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (domain.Song, error) {
	row, ok, err := s.Repo.GetByID(ctx, in.ID)
	if err != nil {
		return domain.Song{}, err
	}
	if !ok {
		return domain.Song{}, perr.NotFoundf("song %s not found", in.ID)
	}
	return toSong(row), nil
}

// List returns catalog entries newest first, optionally filtered by artist
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Song, error) {
	rows, err := s.Repo.List(ctx, in.Artist, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Song, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSong(r))
	}
	return out, nil
}

// Resolve implements the cross module resolver port
func (s *Svc) Resolve(ctx context.Context, id string) (domain.Song, error) {
	return s.Get(ctx, domain.GetInput{ID: id})
}

func toSong(r repo.RowSong) domain.Song {
	return domain.Song{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist,
		Album:       r.Album,
		CoverURL:    r.CoverURL,
		DurationSec: r.DurationSec,
		CreatedAt:   ptime.FormatDisplay(r.CreatedAt),
	}
}
