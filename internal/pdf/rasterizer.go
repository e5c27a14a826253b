// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package pdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
)

// Rasterizer renders single PDF pages to PNG files using go-fitz (MuPDF).
// API reference: https://pkg.go.dev/github.com/gen2brain/go-fitz
type Rasterizer struct {
	tempDir string
}

// NewRasterizer creates a rasterizer that writes page images under tempDir
// (os.TempDir when empty).
func NewRasterizer(tempDir string) *Rasterizer {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Rasterizer{tempDir: tempDir}
}

// Rasterize renders one page (1-based) of the PDF to a transient PNG file
// and returns its path. The caller owns the file and is expected to remove
// it after recognition.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfPath string, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", page, doc.NumPage())
	}

	// go-fitz pages are 0-based
	img, err := doc.Image(page - 1)
	if err != nil {
		return "", fmt.Errorf("failed to render page %d: %w", page, err)
	}

	imagePath := filepath.Join(r.tempDir, fmt.Sprintf("page-%d-%s.png", page, uuid.New().String()))
	out, err := os.Create(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to create page image: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(imagePath)
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}

	return imagePath, nil
}

// PageCount reports the number of pages in the PDF.
func PageCount(pdfPath string) (int, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}
