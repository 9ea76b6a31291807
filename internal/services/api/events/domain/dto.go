// Package domain holds DTOs for unlock event recording and listing
package domain

import "time"

// Source tags where an unlock was triggered from
const (
	SourceRequest = "request"
	SourceRead    = "read"
	SourceSweep   = "sweep"
)

// UnlockEvent is the analytics record written when a capsule unlocks
type UnlockEvent struct {
	CapsuleID   string
	UserID      string
	SongID      string
	Source      string
	ScheduledAt time.Time
	UnlockedAt  time.Time
}

// RecentInput filters the recent unlock listing
type RecentInput struct {
	Source string `json:"source,omitempty" validate:"omitempty,oneof=request read sweep" example:"sweep"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// RecentEvent is an unlock event returned to clients
type RecentEvent struct {
	CapsuleID   string `json:"capsule_id"`
	UserID      string `json:"user_id"`
	SongID      string `json:"song_id"`
	Source      string `json:"source"`
	ScheduledAt string `json:"scheduled_at"`
	UnlockedAt  string `json:"unlocked_at"`
}
