// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer performs OCR on page images via the gosseract client.
// A fresh client is created per page so a failed recognition never leaves
// shared state behind.
type TesseractRecognizer struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractRecognizer constructs a Tesseract-backed recognizer.
func NewTesseractRecognizer() *TesseractRecognizer {
	return &TesseractRecognizer{clientFactory: gosseract.NewClient}
}

// Recognize extracts plain text from one page image in the given language.
func (t *TesseractRecognizer) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := t.clientFactory()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
