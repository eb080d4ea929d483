package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint returns published-file metadata as JSON, including
	// the display title this tool names output folders after.
	DefaultEndpoint = "https://api.steampowered.com/ISteamRemoteStorage/GetPublishedFileDetails/v1/"

	// ListingURLTemplate is the public workshop page for an addon id.
	ListingURLTemplate = "https://steamcommunity.com/sharedfiles/filedetails/?id=%s"
)

// ListingURL builds the workshop listing page URL for an addon id.
func ListingURL(id string) string {
	return fmt.Sprintf(ListingURLTemplate, id)
}

// TitleCache stores resolved titles between runs. Both methods are best
// effort: a broken cache must never fail resolution.
type TitleCache interface {
	Get(ctx context.Context, id string) (string, bool)
	Set(ctx context.Context, id, title string)
}

type detailsResponse struct {
	Response struct {
		PublishedFileDetails []struct {
			PublishedFileID string `json:"publishedfileid"`
			Result          int    `json:"result"`
			Title           string `json:"title"`
		} `json:"publishedfiledetails"`
	} `json:"response"`
}

// Resolver maps addon ids to sanitized display titles. Resolution never
// fails the caller: override map, then cache, then the metadata endpoint,
// then the id-derived fallback.
type Resolver struct {
	endpoint  string
	client    *http.Client
	timeout   time.Duration
	cache     TitleCache
	overrides map[string]string
	log       *slog.Logger
}

type Option func(*Resolver)

// WithEndpoint points the resolver at a different metadata endpoint
// (primarily for tests).
func WithEndpoint(endpoint string) Option {
	return func(r *Resolver) {
		if endpoint != "" {
			r.endpoint = endpoint
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithOverrides installs user-supplied titles that win over remote lookup.
func WithOverrides(overrides map[string]string) Option {
	return func(r *Resolver) {
		r.overrides = overrides
	}
}

func NewResolver(timeout time.Duration, cache TitleCache, log *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		endpoint: DefaultEndpoint,
		client:   &http.Client{},
		timeout:  timeout,
		cache:    cache,
		log:      log.With(slog.String("item", "TitleResolver")),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ResolveTitle returns a sanitized, non-empty title for the addon id.
func (r *Resolver) ResolveTitle(ctx context.Context, id string) string {
	if title, ok := r.overrides[id]; ok {
		return SanitizeTitle(title, id)
	}

	if title, ok := r.cache.Get(ctx, id); ok && title != "" {
		return SanitizeTitle(title, id)
	}

	title, err := r.fetchTitle(ctx, id)
	if err != nil {
		r.log.Debug("Title lookup degraded", slog.String("id", id), slog.Any("error", err))

		return FallbackTitle(id)
	}

	r.cache.Set(ctx, id, title)

	return SanitizeTitle(title, id)
}

func (r *Resolver) fetchTitle(ctx context.Context, id string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	form := url.Values{}
	form.Set("itemcount", "1")
	form.Set("publishedfileids[0]", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot query metadata endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata endpoint returned %d", resp.StatusCode)
	}

	var details detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return "", fmt.Errorf("cannot decode metadata response: %w", err)
	}

	files := details.Response.PublishedFileDetails
	if len(files) == 0 {
		return "", fmt.Errorf("metadata response has no file details")
	}

	title := strings.TrimSpace(files[0].Title)
	if title == "" {
		return "", fmt.Errorf("metadata response has no title")
	}

	return title, nil
}
