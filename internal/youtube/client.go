package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultInnertubeURL = "https://www.youtube.com/youtubei/v1/player"
	defaultOEmbedURL    = "https://www.youtube.com/oembed"

	// The ANDROID Innertube client gets caption tracks without the
	// signature dance the WEB client requires.
	androidClientName    = "ANDROID"
	androidClientVersion = "20.10.38"
	androidSDKVersion    = 30
)

// Client talks to YouTube's unauthenticated endpoints. The zero value is
// usable; the endpoint fields exist so tests can point at local stubs.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// InnertubeURL overrides the player endpoint when non-empty.
	InnertubeURL string
	// OEmbedURL overrides the oEmbed endpoint when non-empty.
	OEmbedURL string
}

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName        string `json:"clientName"`
			ClientVersion     string `json:"clientVersion"`
			AndroidSDKVersion int    `json:"androidSdkVersion"`
			HL                string `json:"hl"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions struct {
		Renderer struct {
			CaptionTracks []CaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// CaptionTrack describes one caption stream of a video. Kind is "asr" for
// speech-recognition tracks and empty for manually authored ones.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// player fetches the Innertube player payload for videoID.
func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	var body playerRequest
	body.Context.Client.ClientName = androidClientName
	body.Context.Client.ClientVersion = androidClientVersion
	body.Context.Client.AndroidSDKVersion = androidSDKVersion
	body.Context.Client.HL = "en"
	body.VideoID = videoID

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	endpoint := c.InnertubeURL
	if endpoint == "" {
		endpoint = defaultInnertubeURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse player endpoint: %w", err)
	}
	q := u.Query()
	q.Set("prettyPrint", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("player status: %d", resp.StatusCode)
	}
	var pr playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &pr, nil
}

type transcriptResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// transcript downloads a caption track in the JSON3 format and joins its
// segments into plain text.
func (c *Client) transcript(ctx context.Context, track CaptionTrack) (string, error) {
	u, err := url.Parse(track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse caption url: %w", err)
	}
	q := u.Query()
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("timedtext status: %d", resp.StatusCode)
	}
	var tr transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode timedtext response: %w", err)
	}

	parts := make([]string, 0, len(tr.Events))
	for _, ev := range tr.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		// Word segments carry embedded newlines; fold each event to one line.
		if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
