package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"context"
)

// HomeItems is how many news articles and events the public home page shows.
const HomeItems = 3

// Home is the content of the public home page.
type Home struct {
	News   []*data.News  `json:"news"`
	Events []*data.Event `json:"events"`
}

// Counts holds the row count of every admin section.
type Counts struct {
	News   int
	Events int
	Books  int
	Staff  int
}

// SiteServicer defines the reads that span several sections.
type SiteServicer interface {
	Home(ctx context.Context) (*Home, error)
	Counts(ctx context.Context) (Counts, error)
}

// Counter reports how many rows a section holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// NewsFeed is the part of the news section the home page reads.
type NewsFeed interface {
	Counter
	Recent(ctx context.Context, limit int) ([]*data.News, error)
}

// EventFeed is the part of the events section the home page reads.
type EventFeed interface {
	Counter
	Upcoming(ctx context.Context, limit int) ([]*data.Event, error)
}

// SiteService assembles the home page and the admin dashboard.
type SiteService struct {
	news   NewsFeed
	events EventFeed
	books  Counter
	staff  Counter
	cache  Cache
	log    logger.Logger
}

var (
	_ NewsFeed  = (*NewsService)(nil)
	_ EventFeed = (*EventService)(nil)
)

// NewSiteService creates a new SiteService.
func NewSiteService(news NewsFeed, events EventFeed, books, staff Counter, cache Cache, log logger.Logger) *SiteService {
	return &SiteService{news: news, events: events, books: books, staff: staff, cache: cache, log: log}
}

// Home returns the most recent news and the nearest upcoming events.
func (s *SiteService) Home(ctx context.Context) (*Home, error) {
	return cached(ctx, s.cache, s.log, "home", func(ctx context.Context) (*Home, error) {
		news, err := s.news.Recent(ctx, HomeItems)
		if err != nil {
			return nil, err
		}
		events, err := s.events.Upcoming(ctx, HomeItems)
		if err != nil {
			return nil, err
		}
		return &Home{News: news, Events: events}, nil
	})
}

// Counts returns the number of rows in each section.
func (s *SiteService) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.News, err = s.news.Count(ctx); err != nil {
		return c, err
	}
	if c.Events, err = s.events.Count(ctx); err != nil {
		return c, err
	}
	if c.Books, err = s.books.Count(ctx); err != nil {
		return c, err
	}
	if c.Staff, err = s.staff.Count(ctx); err != nil {
		return c, err
	}
	return c, nil
}
