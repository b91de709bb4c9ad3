package content

import "testing"

func TestJoin_SkipsWhitespaceOnlyDocuments(t *testing.T) {
	docs := []Document{
		{Text: "first part"},
		{Text: "   \n\t "},
		{Text: "second part"},
	}
	got := Join(docs)
	want := "first part\n\nsecond part"
	if got != want {
		t.Fatalf("unexpected joined text: %q", got)
	}
}

func TestJoin_Empty(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Fatalf("expected empty join, got %q", got)
	}
}

func TestDocument_Empty(t *testing.T) {
	if !(Document{Text: " \n"}).Empty() {
		t.Fatalf("whitespace-only document should be empty")
	}
	if (Document{Text: "x"}).Empty() {
		t.Fatalf("document with text should not be empty")
	}
}

func TestNonEmpty(t *testing.T) {
	docs := []Document{{Text: ""}, {Text: "keep"}, {Text: "\t"}}
	got := NonEmpty(docs)
	if len(got) != 1 || got[0].Text != "keep" {
		t.Fatalf("unexpected filtered docs: %+v", got)
	}
}
