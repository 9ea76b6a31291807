// Package service contains unlock event workflows backed by clickhouse
package service

import (
	"context"
	"time"

	"echobox/internal/platform/logger"
	"echobox/internal/platform/ptime"
	"echobox/internal/platform/store"
	"echobox/internal/services/api/events/domain"
)

// Table is the clickhouse table unlock events land in
const Table = "capsule_unlock_events"

// Service defines the service contract for events
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	ch  store.Clickhouse
	log logger.Logger
}

// New creates a new events service
// a nil clickhouse seam degrades to a no op recorder
func New(ch store.Clickhouse, log logger.Logger) *Svc {
	return &Svc{ch: ch, log: log}
}

// RecordUnlock writes one unlock event; a nil seam drops it silently
func (s *Svc) RecordUnlock(ctx context.Context, ev domain.UnlockEvent) error {
	if s.ch == nil {
		s.log.Debug().Str("capsule_id", ev.CapsuleID).Msg("clickhouse disabled dropping unlock event")
		return nil
	}
	row := []any{
		ev.CapsuleID,
		ev.UserID,
		ev.SongID,
		ev.Source,
		ev.ScheduledAt.UTC(),
		ev.UnlockedAt.UTC(),
	}
	return s.ch.Insert(ctx, Table, [][]any{row})
}

// Recent lists the latest unlock events, optionally filtered by source
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.RecentEvent, error) {
	if s.ch == nil {
		return []domain.RecentEvent{}, nil
	}
	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const sql = `
SELECT capsule_id, user_id, song_id, source, scheduled_at, unlocked_at
FROM capsule_unlock_events
WHERE (? = '' OR source = ?)
ORDER BY unlocked_at DESC
LIMIT ?
`
	rows, err := s.ch.Query(ctx, sql, in.Source, in.Source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RecentEvent
	for rows.Next() {
		var (
			capsuleID, userID, songID, source string
			scheduledAt, unlockedAt           time.Time
		)
		if err := rows.Scan(&capsuleID, &userID, &songID, &source, &scheduledAt, &unlockedAt); err != nil {
			return nil, err
		}
		out = append(out, domain.RecentEvent{
			CapsuleID:   capsuleID,
			UserID:      userID,
			SongID:      songID,
			Source:      source,
			ScheduledAt: ptime.FormatDisplay(scheduledAt),
			UnlockedAt:  ptime.FormatDisplay(unlockedAt),
		})
	}
	return out, rows.Err()
}
