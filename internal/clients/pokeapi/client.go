// Package pokeapi is the HTTP client for the PokeAPI data source
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root
	DefaultBaseURL = "https://pokeapi.co/api/v2/"

	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "pokedex-api"
)

// Client defines the remote resources the catalog reads.
// Every failure is returned as an errors.CodeUnavailable error.
type Client interface {
	// GetIndexPage fetches one page of the pokemon index
	GetIndexPage(ctx context.Context, offset, limit int) (*IndexPage, error)

	// GetPokemon fetches a primary entity by its resource URL
	GetPokemon(ctx context.Context, resourceURL string) (*Pokemon, error)

	// GetSpecies fetches species metadata by its resource URL
	GetSpecies(ctx context.Context, resourceURL string) (*Species, error)

	// GetEvolutionChain fetches the raw evolution chain payload
	GetEvolutionChain(ctx context.Context, chainURL string) ([]byte, error)
}

// Config contains configuration options for the PokeAPI client.
type Config struct {
	// BaseURL of the API (optional, defaults to https://pokeapi.co/api/v2/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// UserAgent sent with every request (optional)
	UserAgent string
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return errors.InvalidArgumentf("invalid base URL %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return nil
}

type client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

// New creates a new PokeAPI client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		httpClient: httpClient,
		baseURL:    base,
		userAgent:  cfg.UserAgent,
	}, nil
}

func (c *client) GetIndexPage(ctx context.Context, offset, limit int) (*IndexPage, error) {
	if offset < 0 || limit <= 0 {
		return nil, errors.InvalidArgumentf("invalid page offset=%d limit=%d", offset, limit)
	}

	pageURL := fmt.Sprintf("pokemon?limit=%d&offset=%d", limit, offset)

	var page IndexPage
	if err := c.getJSON(ctx, pageURL, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *client) GetPokemon(ctx context.Context, resourceURL string) (*Pokemon, error) {
	var pokemon Pokemon
	if err := c.getJSON(ctx, resourceURL, &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

func (c *client) GetSpecies(ctx context.Context, resourceURL string) (*Species, error) {
	var species Species
	if err := c.getJSON(ctx, resourceURL, &species); err != nil {
		return nil, err
	}
	return &species, nil
}

func (c *client) GetEvolutionChain(ctx context.Context, chainURL string) ([]byte, error) {
	body, err := c.get(ctx, chainURL)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.Unavailablef("invalid JSON from %s", chainURL).WithMeta("url", chainURL)
	}
	return body, nil
}

func (c *client) getJSON(ctx context.Context, resourceURL string, out interface{}) error {
	body, err := c.get(ctx, resourceURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to decode %s", resourceURL).
			WithMeta("url", resourceURL)
	}
	return nil
}

// get resolves resourceURL against the base URL, so both absolute URLs from
// index pages and relative paths work
func (c *client) get(ctx context.Context, resourceURL string) ([]byte, error) {
	if resourceURL == "" {
		return nil, errors.InvalidArgument("resource URL is required")
	}

	ref, err := url.Parse(resourceURL)
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid resource URL %q", resourceURL)
	}
	target := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", target)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	slog.Debug("Calling PokeAPI", "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "request to %s failed", target).
			WithMeta("url", target)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // body already consumed
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read response from %s", target).
			WithMeta("url", target)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("PokeAPI request failed", "url", target, "status", resp.StatusCode)
		return nil, errors.Unavailablef("%s returned status %d", target, resp.StatusCode).
			WithMeta("url", target).
			WithMeta("status", resp.StatusCode)
	}

	return body, nil
}
