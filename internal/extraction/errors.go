// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile is returned when the upload entry point is invoked without a
	// source document.
	ErrNoFile = errors.New("no file supplied")

	// ErrNoPapersFound is returned when the segmenter finds zero candidate
	// papers in the recognized text: OCR worked but the document structure
	// was not recognized.
	ErrNoPapersFound = errors.New("could not find any papers in the document")

	// ErrNoValidPapers is returned when candidates were found but every one
	// of them failed the validity gate or was rejected by the store.
	ErrNoValidPapers = errors.New("papers were found but none were valid")
)

// RecognitionError reports a page that failed rasterization or OCR. It is
// fatal for the whole upload; there is no partial-document salvage.
type RecognitionError struct {
	Page int
	Err  error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed on page %d: %v", e.Page, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }
