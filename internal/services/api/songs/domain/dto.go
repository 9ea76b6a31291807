// Package domain holds DTOs for songs http and service contracts
package domain

// CreateInput is the input for registering a song in the catalog
type CreateInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200" example:"Night Drive"`
	Artist      string `json:"artist" validate:"required,min=1,max=200" example:"Neon Coast"`
	Album       string `json:"album,omitempty" validate:"omitempty,max=200" example:"Afterglow"`
	CoverURL    string `json:"cover_url,omitempty" validate:"omitempty,url,max=500" example:"https://cdn.example.com/covers/night-drive.jpg"`
	DurationSec int    `json:"duration_sec,omitempty" validate:"omitempty,min=1,max=36000" example:"214"`
}

// GetInput selects a single song by id
type GetInput struct {
	ID string `json:"id" validate:"required,uuid4" example:"9b8f4c2e-1d7a-4b0e-a2c3-5f6d7e8f9a0b"`
}

// ListInput filters the catalog listing
type ListInput struct {
	Artist string `json:"artist,omitempty" validate:"omitempty,max=200" example:"Neon Coast"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// Song is the catalog entry returned to clients
type Song struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
	CreatedAt   string `json:"created_at"`
}
