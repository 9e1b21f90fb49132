package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coverletter-backend/internal/coverletter"
	"coverletter-backend/internal/pdfgen"
)

func main() {
	outPath := flag.String("out", "./out/sample_cover_letter.pdf", "output path for generated PDF")
	htmlOnly := flag.Bool("html-only", false, "write the rendered HTML and skip PDF printing")
	chromePath := flag.String("chrome", os.Getenv("CHROME_PATH"), "path to the Chrome executable")
	flag.Parse()

	html, err := renderSample(time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	htmlPath := strings.TrimSuffix(*outPath, filepath.Ext(*outPath)) + ".html"
	if err := writeFile(htmlPath, []byte(html)); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if *htmlOnly {
		fmt.Printf("OK: wrote %s\n", htmlPath)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	out, err := pdfgen.NewChromeRenderer(*chromePath, 60*time.Second).Generate(ctx, html)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf failed: %v\n", err)
		os.Exit(1)
	}
	if err := validatePDF(out); err != nil {
		fmt.Fprintf(os.Stderr, "pdf validation failed: %v\n", err)
		os.Exit(1)
	}
	if err := writeFile(*outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s and %s\n", htmlPath, *outPath)
}

func renderSample(now time.Time) (string, error) {
	paragraphs := coverletter.SplitParagraphs(sampleBody)
	rc := coverletter.NewRenderContext(sampleApplicant(), paragraphs, now)

	html, err := coverletter.DefaultRenderer().Render(rc)
	if err != nil {
		return "", err
	}
	if pos := tokenIndex(html); pos != -1 {
		return "", fmt.Errorf("unresolved template tokens near: %s", snippetAround(html, pos, 200))
	}
	return html, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sampleApplicant() coverletter.Applicant {
	return coverletter.Applicant{
		Name:     "Jordan Lee",
		Email:    "jordan.lee@example.com",
		Phone:    "+1-555-0102",
		LinkedIn: "https://www.linkedin.com/in/jordanlee",
		GitHub:   "https://github.com/jordanlee",
		Employer: "Acme Logistics",
		JobTitle: "Senior Backend Engineer",
	}
}

const sampleBody = `Dear Hiring Manager,

I am writing to apply for the Senior Backend Engineer role at Acme Logistics. Over the past eight years I have built resilient APIs and data services in Go and Java.

At Blue Harbor Systems I designed event-driven ingestion pipelines for compliance feeds, and most recently I led a routing service rewrite that cut shipment latency by 18%.

I would welcome the chance to discuss how I can help your platform team.

Sincerely,
Jordan Lee`

func validatePDF(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("output is not a PDF (%d bytes)", len(data))
	}
	return nil
}

func tokenIndex(text string) int {
	if idx := strings.Index(text, "{{"); idx != -1 {
		return idx
	}
	if idx := strings.Index(text, "}}"); idx != -1 {
		return idx
	}
	return -1
}

func snippetAround(text string, pos, maxLen int) string {
	if pos < 0 {
		return ""
	}
	start := pos - maxLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
