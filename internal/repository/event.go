package repository

import (
	"context"
	"fmt"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository/dao"
)

var (
	ErrEventNotFound  = dao.ErrEventNotFound
	ErrArtistNotFound = dao.ErrArtistNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByStudioID(ctx context.Context, studioID uint) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	InsertArtist(ctx context.Context, artist dao.Artist) (dao.Artist, error)
	FindArtistByID(ctx context.Context, id uint) (dao.Artist, error)
	FindAllArtists(ctx context.Context) ([]dao.Artist, error)
	UpdateArtist(ctx context.Context, artist dao.Artist) (dao.Artist, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) FindByStudioID(ctx context.Context, studioID uint) ([]domain.Event, error) {
	found, err := r.dao.FindByStudioID(ctx, studioID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudioID -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	created, err := r.dao.InsertArtist(ctx, dao.Artist{
		StudioID:  artist.StudioID,
		Name:      artist.Name,
		Bio:       artist.Bio,
		Instagram: artist.Instagram,
		Website:   artist.Website,
		ImageURL:  artist.ImageURL,
	})
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.InsertArtist -> %w", err)
	}

	return r.artistDAOToDomain(created), nil
}

func (r *EventRepository) FindArtistByID(ctx context.Context, id uint) (domain.Artist, error) {
	found, err := r.dao.FindArtistByID(ctx, id)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.FindArtistByID -> %w", err)
	}

	return r.artistDAOToDomain(found), nil
}

func (r *EventRepository) FindAllArtists(ctx context.Context) ([]domain.Artist, error) {
	found, err := r.dao.FindAllArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllArtists -> %w", err)
	}

	artists := make([]domain.Artist, 0, len(found))
	for _, a := range found {
		artists = append(artists, r.artistDAOToDomain(a))
	}

	return artists, nil
}

func (r *EventRepository) UpdateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	updated, err := r.dao.UpdateArtist(ctx, dao.Artist{
		ID:        artist.ID,
		Name:      artist.Name,
		Bio:       artist.Bio,
		Instagram: artist.Instagram,
		Website:   artist.Website,
		ImageURL:  artist.ImageURL,
	})
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.UpdateArtist -> %w", err)
	}

	return r.artistDAOToDomain(updated), nil
}

func (r *EventRepository) domainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		StudioID:    e.StudioID,
		ArtistID:    e.ArtistID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Style:       e.Style,
		Teacher:     e.Teacher,
		PriceUSD:    e.PriceUSD,
		Capacity:    e.Capacity,
		BannerURL:   e.BannerURL,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		StudioID:    e.StudioID,
		ArtistID:    e.ArtistID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Style:       e.Style,
		Teacher:     e.Teacher,
		PriceUSD:    e.PriceUSD,
		Capacity:    e.Capacity,
		BannerURL:   e.BannerURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.Artist != nil {
		artist := r.artistDAOToDomain(*e.Artist)
		event.Artist = &artist
	}

	return event
}

func (r *EventRepository) artistDAOToDomain(a dao.Artist) domain.Artist {
	return domain.Artist{
		ID:        a.ID,
		StudioID:  a.StudioID,
		Name:      a.Name,
		Bio:       a.Bio,
		Instagram: a.Instagram,
		Website:   a.Website,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
