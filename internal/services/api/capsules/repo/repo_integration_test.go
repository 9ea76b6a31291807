//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"echobox/internal/platform/store"
)

// one statement per entry; the pgx extended protocol runs them individually
var schema = []string{
	`CREATE TABLE capsules (
	id                  UUID PRIMARY KEY,
	user_id             UUID NOT NULL,
	song_id             UUID NOT NULL,
	emotion_text        TEXT NOT NULL,
	scheduled_unlock_at TIMESTAMPTZ NOT NULL,
	is_unlocked         BOOLEAN NOT NULL DEFAULT FALSE,
	unlocked_at         TIMESTAMPTZ,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX capsules_user_created_idx ON capsules (user_id, created_at DESC)`,
	`CREATE INDEX capsules_due_idx ON capsules (scheduled_unlock_at) WHERE NOT is_unlocked`,
}

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func openRepo(t *testing.T, ctx context.Context, dsn string) (Repo, *store.Store) {
	t.Helper()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	for _, stmt := range schema {
		if _, err := st.PG.Exec(ctx, stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return NewPG().Bind(st.PG), st
}

func seedRow(t *testing.T, ctx context.Context, r Repo, scheduled time.Time) RowCapsule {
	t.Helper()

	row := RowCapsule{
		ID:                uuid.NewString(),
		UserID:            uuid.NewString(),
		SongID:            uuid.NewString(),
		EmotionText:       "buried in the bridge of track four",
		ScheduledUnlockAt: scheduled,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := r.Insert(ctx, row); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return row
}

func TestMarkUnlocked_Integration_SingleWinner(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)
	row := seedRow(t, ctx, r, time.Now().UTC().Add(-time.Minute))

	const n = 8
	var wg sync.WaitGroup
	wins := make(chan bool, n)
	at := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := r.MarkUnlocked(ctx, row.ID, at)
			if err != nil {
				t.Errorf("MarkUnlocked: %v", err)
				return
			}
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	total := 0
	for w := range wins {
		if w {
			total++
		}
	}
	if total != 1 {
		t.Fatalf("winners = %d, want exactly 1", total)
	}

	got, ok, err := r.GetByID(ctx, row.ID, row.UserID)
	if err != nil || !ok {
		t.Fatalf("GetByID after unlock: ok=%v err=%v", ok, err)
	}
	if !got.IsUnlocked || got.UnlockedAt == nil || !got.UnlockedAt.Equal(at) {
		t.Fatalf("row after unlock = %+v, want unlocked at %v", got, at)
	}
}

func TestUpdateLocked_Integration_RefusesUnlocked(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)
	row := seedRow(t, ctx, r, time.Now().UTC().Add(time.Hour))

	row.EmotionText = "second draft"
	row.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	ok, err := r.UpdateLocked(ctx, row)
	if err != nil || !ok {
		t.Fatalf("UpdateLocked while locked: ok=%v err=%v", ok, err)
	}

	if _, err := r.MarkUnlocked(ctx, row.ID, time.Now().UTC()); err != nil {
		t.Fatalf("MarkUnlocked: %v", err)
	}

	row.EmotionText = "third draft"
	ok, err = r.UpdateLocked(ctx, row)
	if err != nil {
		t.Fatalf("UpdateLocked after unlock: %v", err)
	}
	if ok {
		t.Fatalf("UpdateLocked must refuse an unlocked capsule")
	}
}

func TestDueLocked_Integration_OrderAndBound(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)
	now := time.Now().UTC()

	oldest := seedRow(t, ctx, r, now.Add(-3*time.Hour))
	middle := seedRow(t, ctx, r, now.Add(-2*time.Hour))
	_ = seedRow(t, ctx, r, now.Add(-1*time.Hour))
	_ = seedRow(t, ctx, r, now.Add(time.Hour)) // not due

	due, err := r.DueLocked(ctx, now, 2)
	if err != nil {
		t.Fatalf("DueLocked: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due = %d rows, want batch bound 2", len(due))
	}
	if due[0].ID != oldest.ID || due[1].ID != middle.ID {
		t.Fatalf("due order = %s, %s; want oldest first", due[0].ID, due[1].ID)
	}
}

func TestListByUser_Integration_StatusAndOrder(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)
	userID := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	insert := func(created, scheduled time.Time) RowCapsule {
		row := RowCapsule{
			ID:                uuid.NewString(),
			UserID:            userID,
			SongID:            uuid.NewString(),
			EmotionText:       "buried in the bridge of track four",
			ScheduledUnlockAt: scheduled,
			CreatedAt:         created,
			UpdatedAt:         created,
		}
		if err := r.Insert(ctx, row); err != nil {
			t.Fatalf("insert: %v", err)
		}
		return row
	}

	older := insert(now.Add(-2*time.Hour), now.Add(-time.Minute))
	newer := insert(now.Add(-time.Hour), now.Add(time.Hour))
	_ = seedRow(t, ctx, r, now.Add(time.Hour)) // foreign owner, must not appear

	if _, err := r.MarkUnlocked(ctx, older.ID, now); err != nil {
		t.Fatalf("MarkUnlocked: %v", err)
	}

	all, err := r.ListByUser(ctx, userID, "all", 10)
	if err != nil {
		t.Fatalf("ListByUser all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d rows, want 2", len(all))
	}
	if all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Fatalf("order = %s, %s; want newest created first", all[0].ID, all[1].ID)
	}

	locked, err := r.ListByUser(ctx, userID, "locked", 10)
	if err != nil {
		t.Fatalf("ListByUser locked: %v", err)
	}
	if len(locked) != 1 || locked[0].ID != newer.ID {
		t.Fatalf("locked = %+v, want only the still locked row", locked)
	}

	unlocked, err := r.ListByUser(ctx, userID, "unlocked", 10)
	if err != nil {
		t.Fatalf("ListByUser unlocked: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != older.ID {
		t.Fatalf("unlocked = %+v, want only the unlocked row", unlocked)
	}

	// empty status behaves like all
	def, err := r.ListByUser(ctx, userID, "", 10)
	if err != nil {
		t.Fatalf("ListByUser empty status: %v", err)
	}
	if len(def) != 2 {
		t.Fatalf("empty status = %d rows, want 2", len(def))
	}
}

func TestUpcomingByUser_Integration_WindowAndOrder(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)
	userID := uuid.NewString()
	from := time.Now().UTC().Truncate(time.Microsecond)
	until := from.Add(7 * 24 * time.Hour)

	insert := func(scheduled time.Time) RowCapsule {
		row := RowCapsule{
			ID:                uuid.NewString(),
			UserID:            userID,
			SongID:            uuid.NewString(),
			EmotionText:       "buried in the bridge of track four",
			ScheduledUnlockAt: scheduled,
			CreatedAt:         from,
			UpdatedAt:         from,
		}
		if err := r.Insert(ctx, row); err != nil {
			t.Fatalf("insert: %v", err)
		}
		return row
	}

	_ = insert(from)          // opening edge excluded
	edge := insert(until)     // closing edge included
	soon := insert(from.Add(time.Hour))
	_ = insert(until.Add(time.Second)) // beyond the window
	done := insert(from.Add(2 * time.Hour))
	if _, err := r.MarkUnlocked(ctx, done.ID, from); err != nil {
		t.Fatalf("MarkUnlocked: %v", err)
	}

	rows, err := r.UpcomingByUser(ctx, userID, from, until)
	if err != nil {
		t.Fatalf("UpcomingByUser: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("upcoming = %d rows, want 2", len(rows))
	}
	if rows[0].ID != soon.ID || rows[1].ID != edge.ID {
		t.Fatalf("order = %s, %s; want soonest first", rows[0].ID, rows[1].ID)
	}
}
