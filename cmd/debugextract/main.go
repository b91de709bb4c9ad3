package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/app"
	"github.com/condenseio/condense/internal/config"
)

// Prints what the extraction pipeline sees for a URL, without calling the
// model. Handy when a page summarizes badly and the question is whether
// extraction or generation is at fault.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugextract <url>")
		os.Exit(2)
	}
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.Default()
	}
	s := app.NewSummarizer(cfg, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	docs, err := s.LoadContent(ctx, os.Args[1])
	fmt.Println("err:", err)
	for i, d := range docs {
		fmt.Printf("%d. %q by %q — %s [%s] (%d chars)\n", i+1, d.Metadata.Title, d.Metadata.Author, d.Metadata.Source, d.Metadata.Language, len(d.Text))
		fmt.Println(d.Text)
	}
}
