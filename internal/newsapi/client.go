package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUpstream is returned when the news API answers with a non-success
// status. Callers treat it as "no articles" rather than retrying.
var ErrUpstream = errors.New("newsapi: upstream unavailable")

// Client is a minimal NewsAPI top-headlines client.
// Docs: https://newsapi.org/docs/endpoints/top-headlines
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new NewsAPI client. baseURL should be something like
// "https://newsapi.org/v2". If empty, it defaults to the v2 endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RawArticle mirrors the subset of NewsAPI article fields we care about.
type RawArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type headlinesResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
}

// TopHeadlines fetches one page of headlines filtered by a comma-separated
// source list.
func (c *Client) TopHeadlines(ctx context.Context, sources string, page, pageSize int) ([]RawArticle, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("sources", sources)
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + "/top-headlines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: top-headlines status %d", ErrUpstream, resp.StatusCode)
	}
	var out headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Articles, nil
}
