package models

import "time"

// VideoInfo holds display metadata for a video. Produced once per
// request and never mutated.
type VideoInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Summary is the aggregate success payload of one pipeline run.
type Summary struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"video_title"`
	Thumbnail string `json:"thumbnail"`
	Summary   string `json:"summary"`
}

// User is a logged-in account in the oauth profile. Tokens are stored
// so API calls can be made on the user's behalf.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
