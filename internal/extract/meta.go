package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/condenseio/condense/internal/content"
)

// Meta pulls page metadata out of HTML: the document title, OpenGraph
// properties, and common meta tags. src is recorded as Metadata.Source.
// OpenGraph values win over their plain-tag equivalents.
func Meta(input []byte, src string) content.Metadata {
	m := content.Metadata{Source: src}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return m
	}

	m.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		m.Language = strings.TrimSpace(lang)
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		val, _ := s.Attr("content")
		val = strings.TrimSpace(val)
		if val == "" {
			return
		}
		if name, ok := s.Attr("name"); ok {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "description":
				if m.Description == "" {
					m.Description = val
				}
			case "author":
				if m.Author == "" {
					m.Author = val
				}
			}
		}
		if prop, ok := s.Attr("property"); ok {
			switch strings.ToLower(strings.TrimSpace(prop)) {
			case "og:title":
				m.Title = val
			case "og:description":
				m.Description = val
			case "og:site_name":
				m.SiteName = val
			case "og:locale":
				if m.Language == "" {
					m.Language = val
				}
			}
		}
	})
	return m
}
