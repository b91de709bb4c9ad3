// Package webpage loads generic web pages into extracted text documents.
package webpage

import (
	"context"
	"strings"

	"github.com/condenseio/condense/internal/content"
	"github.com/condenseio/condense/internal/extract"
	"github.com/condenseio/condense/internal/fetch"
)

// Loader resolves a page URL into extracted text using a
// browser-identifying fetch client and the HTML extractor.
type Loader struct {
	Client *fetch.Client
}

// Load fetches url and returns its readable text as a single document.
// A fetch or parse failure is an error; a page that yields no text returns
// an empty slice so callers can tell "nothing there" from "could not load".
func (l *Loader) Load(ctx context.Context, url string) ([]content.Document, error) {
	body, contentType, err := l.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc content.Document
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain") {
		doc = content.Document{
			Text:     strings.TrimSpace(string(body)),
			Metadata: content.Metadata{Source: url},
		}
	} else {
		doc = content.Document{
			Text:     extract.Text(body),
			Metadata: extract.Meta(body, url),
		}
	}
	if doc.Empty() {
		return nil, nil
	}
	return []content.Document{doc}, nil
}
