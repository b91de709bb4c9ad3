package content

import "strings"

// Document is one unit of extracted text plus metadata about where it came
// from. Downstream summarization treats the text as opaque; metadata is only
// folded into the combined prompt input when present.
type Document struct {
	Text     string
	Metadata Metadata
}

// Metadata describes the origin of a Document. All fields are optional
// except Source.
type Metadata struct {
	Source      string
	Title       string
	Author      string
	Description string
	SiteName    string
	Language    string
}

// Empty reports whether the document carries no usable text.
func (d Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Join concatenates the text of all documents into a single blob, separated
// by blank lines, for stuff-style single-call summarization. Documents with
// only whitespace are skipped.
func Join(docs []Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		t := strings.TrimSpace(d.Text)
		if t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n\n")
}

// NonEmpty filters docs down to those carrying usable text.
func NonEmpty(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if !d.Empty() {
			out = append(out, d)
		}
	}
	return out
}
