package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
}

// oembed resolves the public title and author of a video URL. It is a
// separate endpoint from the player, so it can fail on its own.
func (c *Client) oembed(ctx context.Context, videoURL string) (*oembedResponse, error) {
	endpoint := c.OEmbedURL
	if endpoint == "" {
		endpoint = defaultOEmbedURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse oembed endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", videoURL)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oembed status: %d", resp.StatusCode)
	}
	var om oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&om); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}
	return &om, nil
}
