package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"

	"carvaluator/internal/models"
)

// ErrNoMarkup is returned when neither the cache nor a file source has the page
var ErrNoMarkup = errors.New("no markup available")

// PageSource returns the markup of a search results page
type PageSource interface {
	Scrape(ctx context.Context, q models.SearchQuery) (string, error)
}

// MarkupStore caches markup per query
type MarkupStore interface {
	Load(q models.SearchQuery) (string, bool)
	Save(q models.SearchQuery, url, markup string) error
}

// Scraper serves pages from the cache and falls back to a live source
type Scraper struct {
	source  PageSource
	store   MarkupStore
	baseURL string
}

// New combines a live source with an optional store (nil disables caching)
func New(source PageSource, store MarkupStore, baseURL string) *Scraper {
	return &Scraper{source: source, store: store, baseURL: baseURL}
}

// Scrape returns cached markup when fresh, otherwise scrapes and caches the result
func (s *Scraper) Scrape(ctx context.Context, q models.SearchQuery) (string, error) {
	if s.store != nil {
		if markup, ok := s.store.Load(q); ok {
			return markup, nil
		}
	}
	if s.source == nil {
		return "", ErrNoMarkup
	}

	fmt.Println("Fetching live marketplace data...")
	markup, err := s.source.Scrape(ctx, q)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.Save(q, BuildSearchURL(s.baseURL, q), markup); err != nil {
			fmt.Printf("⚠️  Failed to cache markup: %v\n", err)
		}
	}
	return markup, nil
}

// FileSource serves a saved page regardless of the query
type FileSource struct {
	Path string
}

// Scrape reads the file
func (f FileSource) Scrape(_ context.Context, _ models.SearchQuery) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return string(data), nil
}
