package service

import (
	"context"

	perr "echobox/internal/platform/errors"
	"echobox/internal/platform/ptime"
	"echobox/internal/services/api/capsules/domain"
	"echobox/internal/services/api/capsules/repo"
	eventsdom "echobox/internal/services/api/events/domain"
)

// outcome classifies one unlock attempt
type outcome int

const (
	outcomeUnlocked outcome = iota
	outcomeAlready
	outcomeNotYet
)

// Unlock explicitly unlocks a capsule
// a capsule whose moment has not arrived is rejected with both the scheduled
// time and the current time in the display zone so clients can show the gap
func (s *Svc) Unlock(ctx context.Context, in domain.UnlockInput) (domain.UnlockResult, error) {
	userID, err := ownerFromCtx(ctx)
	if err != nil {
		return domain.UnlockResult{}, err
	}

	row, ok, err := s.Repo.GetByID(ctx, in.ID, userID)
	if err != nil {
		return domain.UnlockResult{}, err
	}
	if !ok {
		return domain.UnlockResult{}, perr.NotFoundf("capsule %s not found", in.ID)
	}

	row, out, err := s.tryUnlock(ctx, row, eventsdom.SourceRequest)
	if err != nil {
		return domain.UnlockResult{}, err
	}

	switch out {
	case outcomeUnlocked:
		return domain.UnlockResult{Outcome: domain.OutcomeUnlocked, Capsule: s.view(ctx, row, true)}, nil
	case outcomeAlready:
		return domain.UnlockResult{}, perr.Conflictf("capsule %s is already unlocked", in.ID)
	default:
		return domain.UnlockResult{}, perr.Newf(perr.ErrorCodeValidation,
			"capsule %s is not yet eligible: unlocks at %s, it is now %s",
			in.ID, ptime.FormatDisplay(row.ScheduledUnlockAt), ptime.FormatDisplay(s.now()))
	}
}

// tryUnlock is the single unlock engine all paths go through
// the conditional store update is the arbiter under concurrency: losing the
// race reports already unlocked, never a double unlock
func (s *Svc) tryUnlock(ctx context.Context, row repo.RowCapsule, source string) (repo.RowCapsule, outcome, error) {
	if row.IsUnlocked {
		return row, outcomeAlready, nil
	}

	now := s.now()
	if now.Before(row.ScheduledUnlockAt) {
		return row, outcomeNotYet, nil
	}

	won, err := s.Repo.MarkUnlocked(ctx, row.ID, now)
	if err != nil {
		return row, outcomeNotYet, err
	}
	if !won {
		// someone else flipped it first; re-read for the authoritative unlocked_at
		fresh, ok, err := s.Repo.GetByID(ctx, row.ID, row.UserID)
		if err != nil {
			return row, outcomeAlready, err
		}
		if ok {
			row = fresh
		}
		return row, outcomeAlready, nil
	}

	row.IsUnlocked = true
	row.UnlockedAt = &now
	row.UpdatedAt = now
	s.recordUnlock(ctx, row, source)
	return row, outcomeUnlocked, nil
}

// SweepDue unlocks every due capsule it can reach in one bounded pass
// per capsule failures are counted and logged, never fatal to the pass
func (s *Svc) SweepDue(ctx context.Context, batch int) (domain.SweepReport, error) {
	now := s.now()
	due, err := s.Repo.DueLocked(ctx, now, batch)
	if err != nil {
		return domain.SweepReport{}, err
	}

	report := domain.SweepReport{Scanned: len(due)}
	for _, row := range due {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		_, out, err := s.tryUnlock(ctx, row, eventsdom.SourceSweep)
		if err != nil {
			report.Failed++
			s.log.Warn().Str("capsule_id", row.ID).Err(err).Msg("sweep unlock failed")
			continue
		}
		if out == outcomeUnlocked {
			report.Unlocked++
		}
	}
	return report, nil
}

// recordUnlock hands the event to analytics; failures are logged and dropped
func (s *Svc) recordUnlock(ctx context.Context, row repo.RowCapsule, source string) {
	if s.recorder == nil || row.UnlockedAt == nil {
		return
	}
	ev := eventsdom.UnlockEvent{
		CapsuleID:   row.ID,
		UserID:      row.UserID,
		SongID:      row.SongID,
		Source:      source,
		ScheduledAt: row.ScheduledUnlockAt,
		UnlockedAt:  *row.UnlockedAt,
	}
	if err := s.recorder.RecordUnlock(ctx, ev); err != nil {
		s.log.Warn().Str("capsule_id", row.ID).Str("source", source).Err(err).
			Msg("unlock event record failed")
	}
}
