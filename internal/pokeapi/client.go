// Package pokeapi is a small client for the public PokeAPI REST service.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 10 * time.Second

	// Sprites are small PNGs; anything bigger is not a sprite.
	maxSpriteBytes = 1 << 20
)

// ErrNotFound is matched by a StatusError carrying a 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client fetches and decodes PokeAPI resources.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sugar      *zap.SugaredLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another PokeAPI deployment.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(sugar *zap.SugaredLogger) ClientOption {
	return func(c *Client) {
		c.sugar = sugar
	}
}

// NewClient creates a client for the public PokeAPI unless told otherwise.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		sugar:      zap.NewNop().Sugar(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PokemonURL builds the lookup URL for an id or a name key.
func (c *Client) PokemonURL(key string) string {
	return c.baseURL + "/pokemon/" + url.PathEscape(key)
}

// Pokemon fetches GET /pokemon/{key}.
func (c *Client) Pokemon(ctx context.Context, key string) (*Pokemon, error) {
	var pokemon Pokemon
	if err := c.getAndDecode(ctx, c.PokemonURL(key), &pokemon); err != nil {
		return nil, fmt.Errorf("fetching pokemon %q: %w", key, err)
	}
	return &pokemon, nil
}

// Species fetches a pokemon-species resource by its absolute URL.
func (c *Client) Species(ctx context.Context, resourceURL string) (*PokemonSpecies, error) {
	var species PokemonSpecies
	if err := c.getAndDecode(ctx, resourceURL, &species); err != nil {
		return nil, fmt.Errorf("fetching species: %w", err)
	}
	return &species, nil
}

// EvolutionChain fetches an evolution-chain resource by its absolute URL.
func (c *Client) EvolutionChain(ctx context.Context, resourceURL string) (*EvolutionChain, error) {
	var chain EvolutionChain
	if err := c.getAndDecode(ctx, resourceURL, &chain); err != nil {
		return nil, fmt.Errorf("fetching evolution chain: %w", err)
	}
	return &chain, nil
}

// Encounters fetches the encounter list a pokemon record links to.
func (c *Client) Encounters(ctx context.Context, resourceURL string) ([]LocationAreaEncounter, error) {
	var entries []LocationAreaEncounter
	if err := c.getAndDecode(ctx, resourceURL, &entries); err != nil {
		return nil, fmt.Errorf("fetching encounters: %w", err)
	}
	return entries, nil
}

// Sprite downloads raw sprite image bytes.
func (c *Client) Sprite(ctx context.Context, resourceURL string) ([]byte, error) {
	resp, err := c.get(ctx, resourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetching sprite: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSpriteBytes))
	if err != nil {
		return nil, fmt.Errorf("reading sprite: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, resourceURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.sugar.Debugf("GET %s", resourceURL)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.sugar.Debugw("response", "url", resourceURL, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{URL: resourceURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (c *Client) getAndDecode(ctx context.Context, resourceURL string, target any) error {
	resp, err := c.get(ctx, resourceURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding %s: %w", resourceURL, err)
	}
	return nil
}
