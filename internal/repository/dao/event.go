package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrArtistNotFound = errors.New("artist not found")
)

type Event struct {
	ID       uint `gorm:"primaryKey"`
	StudioID uint `gorm:"not null;index"`
	ArtistID *uint

	Name        string `gorm:"not null"`
	Description string
	Date        time.Time `gorm:"not null"`
	StartTime   string
	EndTime     string
	Location    string `gorm:"not null"`
	Style       string
	Teacher     string
	PriceUSD    float64 `gorm:"not null"`
	Capacity    int     `gorm:"not null"`
	BannerURL   string

	Artist *Artist `gorm:"foreignKey:ArtistID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Artist struct {
	ID       uint `gorm:"primaryKey"`
	StudioID uint `gorm:"not null;index"`

	Name      string `gorm:"not null"`
	Bio       string
	Instagram string
	Website   string
	ImageURL  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Artist").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Preload("Artist").Order("date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByStudioID(ctx context.Context, studioID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).Updates(map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"date":        event.Date,
		"start_time":  event.StartTime,
		"end_time":    event.EndTime,
		"location":    event.Location,
		"style":       event.Style,
		"teacher":     event.Teacher,
		"price_usd":   event.PriceUSD,
		"capacity":    event.Capacity,
		"banner_url":  event.BannerURL,
		"artist_id":   event.ArtistID,
	})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertArtist(ctx context.Context, artist Artist) (Artist, error) {
	result := d.db.WithContext(ctx).Create(&artist)
	if result.Error != nil {
		return Artist{}, result.Error
	}

	return artist, nil
}

func (d *EventDAO) FindArtistByID(ctx context.Context, id uint) (Artist, error) {
	var artist Artist

	result := d.db.WithContext(ctx).First(&artist, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Artist{}, ErrArtistNotFound
		}

		return Artist{}, result.Error
	}

	return artist, nil
}

func (d *EventDAO) FindAllArtists(ctx context.Context) ([]Artist, error) {
	var artists []Artist

	result := d.db.WithContext(ctx).Order("name ASC").Find(&artists)
	if result.Error != nil {
		return nil, result.Error
	}

	return artists, nil
}

func (d *EventDAO) UpdateArtist(ctx context.Context, artist Artist) (Artist, error) {
	result := d.db.WithContext(ctx).Model(&Artist{ID: artist.ID}).Updates(map[string]interface{}{
		"name":      artist.Name,
		"bio":       artist.Bio,
		"instagram": artist.Instagram,
		"website":   artist.Website,
		"image_url": artist.ImageURL,
	})
	if result.Error != nil {
		return Artist{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Artist{}, ErrArtistNotFound
	}

	return d.FindArtistByID(ctx, artist.ID)
}
