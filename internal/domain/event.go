package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	StudioID    uint      `json:"studio_id"`
	ArtistID    *uint     `json:"artist_id,omitempty"`
	Artist      *Artist   `json:"artist,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Location    string    `json:"location"`
	Style       string    `json:"style,omitempty"`
	Teacher     string    `json:"teacher,omitempty"`
	PriceUSD    float64   `json:"price_usd"`
	Capacity    int       `json:"capacity"`
	BannerURL   string    `json:"banner_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
