// Package domain holds DTOs for capsules http and service contracts
package domain

import (
	songsdom "echobox/internal/services/api/songs/domain"
)

// CreateInput seals a new capsule around a song
// scheduled_unlock_at is a UTC+8 wall clock string, eg "2026-12-31 20:00:00"
type CreateInput struct {
	SongID            string `json:"song_id" validate:"required,uuid4" example:"9b8f4c2e-1d7a-4b0e-a2c3-5f6d7e8f9a0b"`
	EmotionText       string `json:"emotion_text" validate:"required,min=1,max=1000" example:"the song we argued about on the night bus"`
	ScheduledUnlockAt string `json:"scheduled_unlock_at" validate:"required" example:"2026-12-31 20:00:00"`
}

// GetInput selects a single capsule by id
type GetInput struct {
	ID string `json:"id" validate:"required,uuid4" example:"3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"`
}

// ListInput filters the owner's capsule listing
type ListInput struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=locked unlocked all" example:"locked"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// UpcomingInput bounds the upcoming unlock window in days
type UpcomingInput struct {
	Days int `json:"days,omitempty" validate:"omitempty,min=1,max=30" example:"7"`
}

// UnlockInput requests an explicit unlock
type UnlockInput struct {
	ID string `json:"id" validate:"required,uuid4" example:"3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"`
}

// UpdateInput edits a still locked capsule; empty fields keep their value
type UpdateInput struct {
	ID                string `json:"id" validate:"required,uuid4" example:"3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"`
	SongID            string `json:"song_id,omitempty" validate:"omitempty,uuid4"`
	EmotionText       string `json:"emotion_text,omitempty" validate:"omitempty,min=1,max=1000"`
	ScheduledUnlockAt string `json:"scheduled_unlock_at,omitempty" example:"2027-01-15 08:00:00"`
}

// DeleteInput removes a capsule in any state
type DeleteInput struct {
	ID string `json:"id" validate:"required,uuid4" example:"3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"`
}

// Capsule is the capsule view returned to clients
// emotion_text is withheld until the capsule is unlocked
// all times render in the UTC+8 display zone
type Capsule struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	SongID            string         `json:"song_id"`
	Song              *songsdom.Song `json:"song,omitempty"`
	EmotionText       string         `json:"emotion_text,omitempty"`
	ScheduledUnlockAt string         `json:"scheduled_unlock_at"`
	IsUnlocked        bool           `json:"is_unlocked"`
	UnlockedAt        *string        `json:"unlocked_at,omitempty"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

// Unlock outcomes
const (
	OutcomeUnlocked        = "unlocked"
	OutcomeAlreadyUnlocked = "already_unlocked"
)

// UnlockResult reports the outcome of an explicit unlock request
type UnlockResult struct {
	Outcome string  `json:"outcome" example:"unlocked"`
	Capsule Capsule `json:"capsule"`
}

// SweepReport summarizes one sweep pass over due capsules
type SweepReport struct {
	Scanned  int `json:"scanned"`
	Unlocked int `json:"unlocked"`
	Failed   int `json:"failed"`
}
