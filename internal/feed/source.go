package feed

import (
	"context"
	"fmt"
)

// Source yields the articles of one configured feed.
type Source interface {
	Fetch(ctx context.Context) ([]Article, error)
}

// HTTPSource downloads and parses a feed over HTTP.
type HTTPSource struct {
	url     string
	fetcher *Fetcher
	parser  *Parser
}

func NewHTTPSource(url string, fetcher *Fetcher) *HTTPSource {
	return &HTTPSource{
		url:     url,
		fetcher: fetcher,
		parser:  NewParser(),
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Article, error) {
	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	articles, err := s.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.url, err)
	}
	return articles, nil
}

func (s *HTTPSource) URL() string {
	return s.url
}
