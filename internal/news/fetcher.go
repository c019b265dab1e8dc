package news

import (
	"context"
	"fmt"

	"newscaster/internal/newsapi"
)

// MaxArticles caps every user's article set.
const MaxArticles = 10

// Searcher is the slice of the news API client the fetcher needs.
type Searcher interface {
	TopHeadlines(ctx context.Context, sources string, page, pageSize int) ([]newsapi.RawArticle, error)
}

// Fetcher accumulates complete articles from a paginated news search.
type Fetcher struct {
	Search   Searcher
	PageSize int
}

func NewFetcher(search Searcher, pageSize int) *Fetcher {
	if pageSize <= 0 {
		pageSize = MaxArticles
	}
	return &Fetcher{Search: search, PageSize: pageSize}
}

// complete reports whether an article carries every field the feed needs.
func complete(a newsapi.RawArticle) bool {
	return a.Title != "" && a.Description != "" && a.URLToImage != "" && a.Content != ""
}

// FetchComplete pages through the configured sources until MaxArticles
// complete articles are collected or a page comes back empty, which
// guards against infinite pagination on an exhausted source list.
func (f *Fetcher) FetchComplete(ctx context.Context, sources string) ([]newsapi.RawArticle, error) {
	var out []newsapi.RawArticle
	for page := 1; len(out) < MaxArticles; page++ {
		raw, err := f.Search.TopHeadlines(ctx, sources, page, f.PageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		if len(raw) == 0 {
			break
		}
		for _, a := range raw {
			if !complete(a) {
				continue
			}
			out = append(out, a)
			if len(out) >= MaxArticles {
				break
			}
		}
	}
	return out, nil
}
