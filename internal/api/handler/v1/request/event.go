package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date" format:"YYYY-MM-DD"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Location    string  `json:"location"`
	Style       string  `json:"style"`
	Teacher     string  `json:"teacher"`
	PriceUSD    float64 `json:"price_usd"`
	Capacity    int     `json:"capacity"`
	BannerURL   string  `json:"banner_url"`
	ArtistID    *uint   `json:"artist_id"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.PriceUSD, validation.Min(0.0)),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.BannerURL, is.URL),
	)
}

type UpdateEventRequest struct {
	CreateEventRequest
}

type CreateArtistRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Instagram string `json:"instagram"`
	Website   string `json:"website"`
	ImageURL  string `json:"image_url"`
}

func (req *CreateArtistRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 80)),
		validation.Field(&req.Bio, validation.Length(0, 2000)),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.ImageURL, is.URL),
	)
}

type UpdateStudioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	BCHAddress  string `json:"bch_address"`
}

func (req *UpdateStudioRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 80)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.LogoURL, is.URL),
	)
}
