package webui

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// writeSummaryPDF renders the generated summary as a minimal PDF: a
// heading, the clickable source URL, and the summary paragraphs. No
// layout engine, just line-by-line flow.
func writeSummaryPDF(w io.Writer, source, summary string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Content Summary", true)
	pdf.AddPage()
	// Core fonts are cp1252; translate what we can and drop the rest.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Content Summary", "", 1, "L", false, 0, "")

	if source != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.WriteLinkString(4, tr(source), source)
		pdf.Ln(8)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "", 11)
	scanner := bufio.NewScanner(strings.NewReader(summary))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		pdf.MultiCell(0, 5, tr(s), "", "L", false)
		pdf.Ln(1)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 4, "Generated "+time.Now().UTC().Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}
