package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exam-vault/internal/extraction"
	"github.com/exam-vault/internal/models"
	"github.com/exam-vault/internal/ocr"
	"github.com/exam-vault/internal/pdf"
)

// vault-extract runs the extraction pipeline against one local PDF and
// prints the recovered papers as JSON, without a server or a database.
// Useful for tuning the institution anchor and checking scan quality.

var (
	language    = flag.String("lang", "eng", "OCR language")
	institution = flag.String("institution", "GITAM", "Institution header anchor")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: vault-extract [flags] <paper.pdf>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)

	pageCount, err := pdf.PageCount(pdfPath)
	if err != nil {
		log.Fatalf("failed to read PDF: %v", err)
	}

	accumulator := extraction.NewAccumulator(pdf.NewRasterizer(""), ocr.NewTesseractRecognizer(), *language)
	segmenter := extraction.NewSegmenter(*institution)

	ctx := context.Background()
	fullText, err := accumulator.Accumulate(ctx, pdfPath, pageCount)
	if err != nil {
		log.Fatalf("OCR failed: %v", err)
	}

	candidates := segmenter.Segment(fullText)
	if len(candidates) == 0 {
		log.Fatalf("could not find any papers in %s", pdfPath)
	}

	type result struct {
		Paper models.Paper `json:"paper"`
		Valid bool         `json:"valid"`
	}

	results := make([]result, 0, len(candidates))
	for _, candidate := range candidates {
		paper, ok := extraction.AssemblePaper(candidate)
		results = append(results, result{Paper: paper, Valid: ok})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("failed to encode results: %v", err)
	}
}
