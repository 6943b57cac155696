package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository"
)

var (
	ErrEventNotFound  = repository.ErrEventNotFound
	ErrArtistNotFound = repository.ErrArtistNotFound
	ErrNotEventOwner  = errors.New("studio does not own this event")
	ErrNotArtistOwner = errors.New("studio does not own this artist")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByStudioID(ctx context.Context, studioID uint) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error)
	FindArtistByID(ctx context.Context, id uint) (domain.Artist, error)
	FindAllArtists(ctx context.Context) ([]domain.Artist, error)
	UpdateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetStudioEvents(ctx context.Context, studioID uint) ([]domain.Event, error) {
	events, err := s.repo.FindByStudioID(ctx, studioID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudioID -> %w", err)
	}

	return events, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event, studioID uint) (domain.Event, error) {
	existing, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}
	if existing.StudioID != studioID {
		return domain.Event{}, ErrNotEventOwner
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id, studioID uint) error {
	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if existing.StudioID != studioID {
		return ErrNotEventOwner
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) GetArtist(ctx context.Context, id uint) (domain.Artist, error) {
	artist, err := s.repo.FindArtistByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return domain.Artist{}, ErrArtistNotFound
		}

		return domain.Artist{}, fmt.Errorf("s.repo.FindArtistByID -> %w", err)
	}

	return artist, nil
}

func (s *EventService) GetArtists(ctx context.Context) ([]domain.Artist, error) {
	artists, err := s.repo.FindAllArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllArtists -> %w", err)
	}

	return artists, nil
}

func (s *EventService) CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	created, err := s.repo.CreateArtist(ctx, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.CreateArtist -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateArtist(ctx context.Context, artist domain.Artist, studioID uint) (domain.Artist, error) {
	existing, err := s.GetArtist(ctx, artist.ID)
	if err != nil {
		return domain.Artist{}, err
	}
	if existing.StudioID != studioID {
		return domain.Artist{}, ErrNotArtistOwner
	}

	updated, err := s.repo.UpdateArtist(ctx, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.UpdateArtist -> %w", err)
	}

	return updated, nil
}
