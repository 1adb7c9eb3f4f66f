// Package kinopoisk implements catalog.Provider against the Kinopoisk v1.4
// REST API.
package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cinegram/cinegram/internal/catalog"
)

const DefaultBaseURL = "https://api.kinopoisk.dev"

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   httpc,
	}
}

var _ = catalog.Provider(&Client{})

func (c *Client) SearchMovies(ctx context.Context, query string, limit int) ([]catalog.Movie, error) {
	var page struct {
		Docs []movieDoc `json:"docs"`
	}
	if err := c.get(ctx, c.searchURL("/v1.4/movie/search", query, limit), &page); err != nil {
		return nil, err
	}

	movies := make([]catalog.Movie, 0, len(page.Docs))
	for _, doc := range page.Docs {
		movies = append(movies, doc.toDomain())
	}

	return movies, nil
}

func (c *Client) SearchPersons(ctx context.Context, query string, limit int) ([]catalog.Person, error) {
	var page struct {
		Docs []personDoc `json:"docs"`
	}
	if err := c.get(ctx, c.searchURL("/v1.4/person/search", query, limit), &page); err != nil {
		return nil, err
	}

	persons := make([]catalog.Person, 0, len(page.Docs))
	for _, doc := range page.Docs {
		persons = append(persons, doc.toDomain())
	}

	return persons, nil
}

func (c *Client) PersonDetail(ctx context.Context, id int64) (catalog.Person, error) {
	var doc personDoc
	if err := c.get(ctx, c.baseURL+"/v1.4/person/"+strconv.FormatInt(id, 10), &doc); err != nil {
		return catalog.Person{}, err
	}

	return doc.toDomain(), nil
}

func (c *Client) searchURL(path, query string, limit int) string {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("query", query)

	return c.baseURL + path + "?" + q.Encode()
}

func (c *Client) get(ctx context.Context, uri string, decodeInto any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("creating a new HTTP request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("executing an http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &catalog.ProviderError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(decodeInto); err != nil {
		return fmt.Errorf("decoding catalog response: %w", err)
	}

	return nil
}
