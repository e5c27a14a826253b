// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"context"
	"os"
	"strings"

	"github.com/exam-vault/internal/logger"
)

// Rasterizer converts one PDF page to a raster image on disk and returns the
// image path. Pages are 1-based.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, page int) (imagePath string, err error)
}

// Recognizer performs OCR on a raster image in the given language.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath, language string) (string, error)
}

// Accumulator walks a PDF page by page, OCRs each page and concatenates the
// recognized text into one blob, preserving page order. Processing is
// strictly sequential; the OCR backend is typically rate-limited and page
// order must never interleave.
type Accumulator struct {
	rasterizer Rasterizer
	recognizer Recognizer
	language   string
}

// NewAccumulator creates an accumulator bound to a rasterizer, a recognizer
// and a single OCR language used for the whole document.
func NewAccumulator(r Rasterizer, rec Recognizer, language string) *Accumulator {
	return &Accumulator{rasterizer: r, recognizer: rec, language: language}
}

// Accumulate produces the full-document text blob for pages 1..pageCount.
// Each transient page image is removed after recognition, on success and on
// failure alike. A page that fails rasterization or OCR aborts the whole
// document with a RecognitionError.
func (a *Accumulator) Accumulate(ctx context.Context, pdfPath string, pageCount int) (string, error) {
	var text strings.Builder

	for page := 1; page <= pageCount; page++ {
		pageText, err := a.processPage(ctx, pdfPath, page)
		if err != nil {
			return "", &RecognitionError{Page: page, Err: err}
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), nil
}

// processPage handles one page: rasterize, recognize, clean up the image.
// The deferred removal guarantees the temp image never outlives the page.
func (a *Accumulator) processPage(ctx context.Context, pdfPath string, page int) (string, error) {
	imagePath, err := a.rasterizer.Rasterize(ctx, pdfPath, page)
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.Remove(imagePath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warnf("failed to remove page image %s: %v", imagePath, rmErr)
		}
	}()

	return a.recognizer.Recognize(ctx, imagePath, a.language)
}
