package domain

import "time"

type Artist struct {
	ID        uint      `json:"id"`
	StudioID  uint      `json:"studio_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	Instagram string    `json:"instagram,omitempty"`
	Website   string    `json:"website,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
