package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

// EventRepository defines the database operations on events.
type EventRepository interface {
	List(ctx context.Context, order data.Order) ([]*data.Event, error)
	Upcoming(ctx context.Context, from time.Time, limit int) ([]*data.Event, error)
	GetByID(ctx context.Context, id int64) (*data.Event, error)
	Create(ctx context.Context, e *data.Event) error
	Update(ctx context.Context, e *data.Event) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// EventServicer defines the interface for managing and listing events.
type EventServicer interface {
	List(ctx context.Context) ([]*data.Event, error)
	Split(ctx context.Context) (upcoming, past []*data.Event, err error)
	Get(ctx context.Context, id int64) (*data.Event, error)
	Create(ctx context.Context, adminID string, in EventInput) (*data.Event, error)
	Update(ctx context.Context, id int64, adminID string, in EventInput) (*data.Event, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// EventInput is the submitted event form. Date is YYYY-MM-DD and Time, when
// present, is HH:MM.
type EventInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Date        string `validate:"required"`
	Time        string
	Location    string
	ImageURL    string `validate:"omitempty,url"`
}

var eventMessages = map[string]string{
	"Title.required":       "events.title_required",
	"Description.required": "events.description_required",
	"Date.required":        "events.date_required",
	"ImageURL.url":         "image.invalid",
}

// EventService provides business logic for events.
type EventService struct {
	repo     EventRepository
	cache    Cache
	log      logger.Logger
	renderer *renderer
	loc      *time.Location
	now      func() time.Time
}

// NewEventService creates a new EventService. Dates typed into the form are
// read in loc.
func NewEventService(repo EventRepository, cache Cache, log logger.Logger, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{
		repo:     repo,
		cache:    cache,
		log:      log,
		renderer: newRenderer(),
		loc:      loc,
		now:      time.Now,
	}
}

// List returns every event, latest date first, for the admin console.
func (s *EventService) List(ctx context.Context) ([]*data.Event, error) {
	return s.repo.List(ctx, data.DateDescending)
}

// Public returns every event, soonest first, with descriptions rendered.
func (s *EventService) Public(ctx context.Context) ([]*data.Event, error) {
	return cached(ctx, s.cache, s.log, "events", func(ctx context.Context) ([]*data.Event, error) {
		items, err := s.repo.List(ctx, data.DateAscending)
		if err != nil {
			return nil, err
		}
		s.renderAll(items)
		return items, nil
	})
}

// Split divides the public list at the current time. Upcoming events are
// soonest first and past events most recent first.
func (s *EventService) Split(ctx context.Context) (upcoming, past []*data.Event, err error) {
	items, err := s.Public(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	upcoming = []*data.Event{}
	past = []*data.Event{}
	for _, e := range items {
		if e.Date.Before(now) {
			past = append([]*data.Event{e}, past...)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past, nil
}

// Upcoming returns at most limit events that have not started yet.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]*data.Event, error) {
	items, err := s.repo.Upcoming(ctx, s.now(), limit)
	if err != nil {
		return nil, err
	}
	s.renderAll(items)
	return items, nil
}

func (s *EventService) renderAll(items []*data.Event) {
	for _, e := range items {
		e.HTMLDescription = s.renderer.render(e.Description)
	}
}

// Get retrieves a single event.
func (s *EventService) Get(ctx context.Context, id int64) (*data.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and inserts the event.
func (s *EventService) Create(ctx context.Context, adminID string, in EventInput) (*data.Event, error) {
	date, err := s.parse(&in)
	if err != nil {
		return nil, err
	}

	e := &data.Event{Audit: data.Audit{AdminID: adminID, CreatedAt: s.now().UTC()}}
	applyEvent(e, in, date)

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return e, nil
}

// Update validates in and rewrites the event with the given id.
func (s *EventService) Update(ctx context.Context, id int64, adminID string, in EventInput) (*data.Event, error) {
	date, err := s.parse(&in)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyEvent(e, in, date)
	e.Touch(adminID, s.now().UTC())

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return e, nil
}

// parse trims and validates in and combines its date and time.
func (s *EventService) parse(in *EventInput) (time.Time, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := checkInput(in, eventMessages); err != nil {
		return time.Time{}, err
	}

	value, layout := in.Date, "2006-01-02"
	if in.Time != "" {
		value, layout = in.Date+" "+in.Time, "2006-01-02 15:04"
	}
	date, err := time.ParseInLocation(layout, value, s.loc)
	if err != nil {
		return time.Time{}, invalid("date", "events.date_invalid")
	}
	return date.UTC(), nil
}

func applyEvent(e *data.Event, in EventInput, date time.Time) {
	e.Title = in.Title
	e.Description = in.Description
	e.Date = date
	e.Location = data.NullString(in.Location)
	e.ImageURL = data.NullString(in.ImageURL)
}

// Delete removes the event with the given id.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// Count returns the number of events.
func (s *EventService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
