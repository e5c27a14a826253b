// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"context"

	"github.com/exam-vault/internal/logger"
	"github.com/exam-vault/internal/models"
)

// PaperStore is the persistence collaborator. Any non-nil error means "this
// paper was not saved"; the pipeline records the skip and continues with the
// remaining candidates. Uniqueness on (subject_code, session, term) is
// enforced by the store, not by the pipeline.
type PaperStore interface {
	SavePaper(ctx context.Context, paper *models.Paper) error
}

// SavedPaper summarizes one persisted paper for the caller.
type SavedPaper struct {
	SubjectCode    string `json:"subject_code"`
	QuestionsFound int    `json:"questions_found"`
}

// Summary is the structured result of one upload.
type Summary struct {
	Saved   []SavedPaper `json:"saved"`
	Skipped int          `json:"skipped"`
}

// Pipeline runs the full extraction flow for one uploaded document:
// accumulate OCR text, segment into candidate papers, assemble each
// candidate and persist the ones that pass the validity gate. All stages
// execute sequentially in data-flow order; there is no concurrency inside
// one upload.
type Pipeline struct {
	accumulator *Accumulator
	segmenter   *Segmenter
	store       PaperStore
}

// NewPipeline wires the extraction stages to their collaborators.
func NewPipeline(accumulator *Accumulator, segmenter *Segmenter, store PaperStore) *Pipeline {
	return &Pipeline{
		accumulator: accumulator,
		segmenter:   segmenter,
		store:       store,
	}
}

// Process extracts and persists every recognizable paper in the PDF.
//
// Batch-abort errors: ErrNoFile, a RecognitionError from any page,
// ErrNoPapersFound when segmentation yields nothing, and ErrNoValidPapers
// when candidates existed but none survived the validity gate and the
// store. Per-candidate failures never abort the batch.
func (p *Pipeline) Process(ctx context.Context, pdfPath string, pageCount int) (*Summary, error) {
	if pdfPath == "" {
		return nil, ErrNoFile
	}

	fullText, err := p.accumulator.Accumulate(ctx, pdfPath, pageCount)
	if err != nil {
		return nil, err
	}

	candidates := p.segmenter.Segment(fullText)
	if len(candidates) == 0 {
		return nil, ErrNoPapersFound
	}
	logger.Printf("segmenter found %d candidate paper(s) in %s", len(candidates), pdfPath)

	summary := &Summary{}
	for i, candidate := range candidates {
		paper, ok := AssemblePaper(candidate)
		if !ok {
			logger.Printf("candidate %d skipped: subject=%q questions=%d", i+1, paper.SubjectCode, len(paper.Questions))
			summary.Skipped++
			continue
		}

		if err := p.store.SavePaper(ctx, &paper); err != nil {
			logger.Warnf("candidate %d (%s) not saved: %v", i+1, paper.SubjectCode, err)
			summary.Skipped++
			continue
		}

		summary.Saved = append(summary.Saved, SavedPaper{
			SubjectCode:    paper.SubjectCode,
			QuestionsFound: len(paper.Questions),
		})
	}

	if len(summary.Saved) == 0 {
		return summary, ErrNoValidPapers
	}
	return summary, nil
}
