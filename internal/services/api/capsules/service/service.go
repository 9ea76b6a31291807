// Package service contains capsule workflows including the unlock engine
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"echobox/internal/core/normalize"
	"echobox/internal/modkit/repokit"
	perr "echobox/internal/platform/errors"
	"echobox/internal/platform/logger"
	pnet "echobox/internal/platform/net"
	"echobox/internal/platform/ptime"
	"echobox/internal/services/api/capsules/domain"
	"echobox/internal/services/api/capsules/repo"
	eventsdom "echobox/internal/services/api/events/domain"
	songsdom "echobox/internal/services/api/songs/domain"
)

// DefaultUpcomingDays bounds the upcoming window when the client does not
const DefaultUpcomingDays = 7

// Service defines the service contract for capsules
type Service interface {
	domain.ServicePort
	domain.SweepPort
}

// Deps are the collaborators the capsule service needs beyond its own repo
type Deps struct {
	Log      logger.Logger
	Resolver songsdom.ResolverPort
	Recorder eventsdom.RecorderPort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	log      logger.Logger
	resolver songsdom.ResolverPort
	recorder eventsdom.RecorderPort
	norm     *normalize.Normalizer
	now      func() time.Time
}

// New creates a new capsules service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], d Deps) *Svc {
	if db == nil {
		panic("capsules.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("capsules.Service requires a non nil Repo binder")
	}
	if d.Resolver == nil {
		panic("capsules.Service requires a song resolver port")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		log:      d.Log,
		resolver: d.Resolver,
		recorder: d.Recorder,
		norm:     normalize.New(),
		now:      ptime.NowUTC,
	}
}

// Create seals a capsule; the scheduled moment must be in the future
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Capsule, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return domain.Capsule{}, err
	}

	scheduled, err := parseScheduled(in.ScheduledUnlockAt)
	if err != nil {
		return domain.Capsule{}, err
	}
	now := s.now()
	if !scheduled.After(now) {
		return domain.Capsule{}, perr.Newf(perr.ErrorCodeValidation,
			"scheduled_unlock_at must be in the future, got %s (now %s)",
			ptime.FormatDisplay(scheduled), ptime.FormatDisplay(now))
	}

	text := s.norm.Clean(in.EmotionText)
	if text == "" {
		return domain.Capsule{}, perr.New(perr.ErrorCodeValidation, "emotion_text must not be empty")
	}

	if _, err := s.resolver.Resolve(ctx, in.SongID); err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Capsule{}, perr.Newf(perr.ErrorCodeValidation, "song %s does not exist", in.SongID)
		}
		return domain.Capsule{}, err
	}

	row := repo.RowCapsule{
		ID:                uuid.NewString(),
		UserID:            userID,
		SongID:            in.SongID,
		EmotionText:       text,
		ScheduledUnlockAt: scheduled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Capsule{}, err
	}
	return s.view(ctx, row, false), nil
}

// Get returns one capsule, unlocking it lazily when its moment has passed
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (domain.Capsule, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return domain.Capsule{}, err
	}

	row, ok, err := s.Repo.GetByID(ctx, in.ID, userID)
	if err != nil {
		return domain.Capsule{}, err
	}
	if !ok {
		return domain.Capsule{}, perr.NotFoundf("capsule %s not found", in.ID)
	}

	row, _, err = s.tryUnlock(ctx, row, eventsdom.SourceRead)
	if err != nil {
		return domain.Capsule{}, err
	}
	return s.view(ctx, row, true), nil
}

// List returns the owner's capsules newest first, filtered by lock status
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Capsule, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = "all"
	}
	rows, err := s.Repo.ListByUser(ctx, userID, status, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Capsule, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.view(ctx, r, false))
	}
	return out, nil
}

// Upcoming returns still locked capsules due within the window, soonest first
func (s *Svc) Upcoming(ctx context.Context, in domain.UpcomingInput) ([]domain.Capsule, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	days := in.Days
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	from := s.now()
	until := from.Add(time.Duration(days) * 24 * time.Hour)

	rows, err := s.Repo.UpcomingByUser(ctx, userID, from, until)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Capsule, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.view(ctx, r, false))
	}
	return out, nil
}

// Update edits a capsule that has not unlocked yet
func (s *Svc) Update(ctx context.Context, in domain.UpdateInput) (domain.Capsule, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return domain.Capsule{}, err
	}

	row, ok, err := s.Repo.GetByID(ctx, in.ID, userID)
	if err != nil {
		return domain.Capsule{}, err
	}
	if !ok {
		return domain.Capsule{}, perr.NotFoundf("capsule %s not found", in.ID)
	}
	if row.IsUnlocked {
		return domain.Capsule{}, perr.Conflictf("capsule %s is already unlocked and can no longer be edited", in.ID)
	}

	if in.SongID != "" && in.SongID != row.SongID {
		if _, err := s.resolver.Resolve(ctx, in.SongID); err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				return domain.Capsule{}, perr.Newf(perr.ErrorCodeValidation, "song %s does not exist", in.SongID)
			}
			return domain.Capsule{}, err
		}
		row.SongID = in.SongID
	}
	if in.EmotionText != "" {
		text := s.norm.Clean(in.EmotionText)
		if text == "" {
			return domain.Capsule{}, perr.New(perr.ErrorCodeValidation, "emotion_text must not be empty")
		}
		row.EmotionText = text
	}
	now := s.now()
	if in.ScheduledUnlockAt != "" {
		scheduled, err := parseScheduled(in.ScheduledUnlockAt)
		if err != nil {
			return domain.Capsule{}, err
		}
		if !scheduled.After(now) {
			return domain.Capsule{}, perr.Newf(perr.ErrorCodeValidation,
				"scheduled_unlock_at must be in the future, got %s (now %s)",
				ptime.FormatDisplay(scheduled), ptime.FormatDisplay(now))
		}
		row.ScheduledUnlockAt = scheduled
	}
	row.UpdatedAt = now

	ok, err = s.Repo.UpdateLocked(ctx, row)
	if err != nil {
		return domain.Capsule{}, err
	}
	if !ok {
		// unlocked between the read and the write
		return domain.Capsule{}, perr.Conflictf("capsule %s is already unlocked and can no longer be edited", in.ID)
	}
	return s.view(ctx, row, false), nil
}

// Delete removes a capsule regardless of lock state
func (s *Svc) Delete(ctx context.Context, in domain.DeleteInput) error {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return err
	}
	ok, err := s.Repo.Delete(ctx, in.ID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("capsule %s not found", in.ID)
	}
	return nil
}

func ownerFromCtx(ctx context.Context) (string, error) {
	if uid := pnet.UserID(ctx); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("missing user identity")
}

// parseScheduled reads a display zone wall clock string into a UTC instant
func parseScheduled(s string) (time.Time, error) {
	t, err := ptime.ParseDisplay(s)
	if err != nil {
		return time.Time{}, perr.Newf(perr.ErrorCodeValidation,
			"scheduled_unlock_at must look like %q in UTC+8", ptime.DisplayLayout)
	}
	return t, nil
}

// view renders a row for clients; withSong resolves the song summary
func (s *Svc) view(ctx context.Context, row repo.RowCapsule, withSong bool) domain.Capsule {
	c := domain.Capsule{
		ID:                row.ID,
		UserID:            row.UserID,
		SongID:            row.SongID,
		ScheduledUnlockAt: ptime.FormatDisplay(row.ScheduledUnlockAt),
		IsUnlocked:        row.IsUnlocked,
		CreatedAt:         ptime.FormatDisplay(row.CreatedAt),
		UpdatedAt:         ptime.FormatDisplay(row.UpdatedAt),
	}
	if row.IsUnlocked {
		c.EmotionText = row.EmotionText
	}
	if row.UnlockedAt != nil {
		v := ptime.FormatDisplay(*row.UnlockedAt)
		c.UnlockedAt = &v
	}
	if withSong {
		if song, err := s.resolver.Resolve(ctx, row.SongID); err == nil {
			c.Song = &song
		} else {
			s.log.Warn().Str("capsule_id", row.ID).Str("song_id", row.SongID).Err(err).
				Msg("song resolve failed for capsule view")
		}
	}
	return c
}
