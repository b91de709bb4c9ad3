package youtube

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/condenseio/condense/internal/content"
)

// Loader fetches video transcripts as documents.
type Loader struct {
	Client *Client
	// Languages lists preferred transcript languages in priority order.
	// Empty means English.
	Languages []string
}

// Load extracts the transcript of the video at rawURL. When withMetadata
// is set it also resolves title and author through the oEmbed endpoint,
// which can fail independently of transcript retrieval; callers use that
// as the cue to retry without metadata.
func (l *Loader) Load(ctx context.Context, rawURL string, withMetadata bool) ([]content.Document, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = &Client{}
	}

	pr, err := client.player(ctx, id)
	if err != nil {
		return nil, err
	}
	if s := pr.PlayabilityStatus.Status; s != "" && s != "OK" {
		if r := pr.PlayabilityStatus.Reason; r != "" {
			return nil, fmt.Errorf("video not playable: %s (%s)", s, r)
		}
		return nil, fmt.Errorf("video not playable: %s", s)
	}

	track, err := pickTrack(pr.Captions.Renderer.CaptionTracks, l.preferredTags())
	if err != nil {
		return nil, err
	}
	text, err := client.transcript(ctx, track)
	if err != nil {
		return nil, err
	}

	meta := content.Metadata{Source: rawURL, Language: track.LanguageCode}
	if withMetadata {
		om, err := client.oembed(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("video metadata: %w", err)
		}
		meta.Title = om.Title
		meta.Author = om.AuthorName
		meta.SiteName = om.ProviderName
		meta.Description = pr.VideoDetails.ShortDescription
	}

	doc := content.Document{Text: text, Metadata: meta}
	if doc.Empty() {
		return nil, nil
	}
	return []content.Document{doc}, nil
}

func (l *Loader) preferredTags() []language.Tag {
	langs := l.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	tags := make([]language.Tag, 0, len(langs))
	for _, s := range langs {
		if tag, err := language.Parse(s); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	return tags
}
