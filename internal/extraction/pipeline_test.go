// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/exam-vault/internal/models"
)

// fakeRasterizer writes a real temp file per page so the accumulator's
// cleanup path can be observed.
type fakeRasterizer struct {
	dir     string
	created []string
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, pdfPath string, page int) (string, error) {
	path := filepath.Join(f.dir, fmt.Sprintf("page-%d.png", page))
	if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
		return "", err
	}
	f.created = append(f.created, path)
	return path, nil
}

// fakeRecognizer returns one canned text per page, optionally failing on a
// chosen page.
type fakeRecognizer struct {
	pages    []string
	failPage int
	call     int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	f.call++
	if f.failPage == f.call {
		return "", errors.New("ocr backend unavailable")
	}
	return f.pages[f.call-1], nil
}

// fakeStore records saved papers and can simulate a uniqueness conflict.
type fakeStore struct {
	papers    []models.Paper
	enforceID bool
	seen      map[string]bool
}

func (s *fakeStore) SavePaper(ctx context.Context, paper *models.Paper) error {
	if s.enforceID {
		if s.seen == nil {
			s.seen = make(map[string]bool)
		}
		key := paper.SubjectCode + "|" + paper.Session + "|" + paper.Term
		if s.seen[key] {
			return errors.New("paper already exists for this subject, session and term")
		}
		s.seen[key] = true
	}
	s.papers = append(s.papers, *paper)
	return nil
}

func newTestPipeline(t *testing.T, rec *fakeRecognizer, store *fakeStore) (*Pipeline, *fakeRasterizer) {
	t.Helper()
	ras := &fakeRasterizer{dir: t.TempDir()}
	acc := NewAccumulator(ras, rec, "eng")
	return NewPipeline(acc, NewSegmenter("GITAM"), store), ras
}

func TestPipeline_TwoPapersSaved(t *testing.T) {
	rec := &fakeRecognizer{pages: []string{samplePaper("CSEN3001"), samplePaper("CSEN3001")}}
	store := &fakeStore{}
	pipeline, ras := newTestPipeline(t, rec, store)

	summary, err := pipeline.Process(context.Background(), "exam.pdf", 2)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(summary.Saved) != 2 {
		t.Fatalf("Expected 2 papers saved, got %d", len(summary.Saved))
	}
	for i, saved := range summary.Saved {
		if saved.SubjectCode != "CSEN3001" {
			t.Errorf("Paper %d: expected subject CSEN3001, got %q", i, saved.SubjectCode)
		}
		if saved.QuestionsFound != 3 {
			t.Errorf("Paper %d: expected 3 questions, got %d", i, saved.QuestionsFound)
		}
	}

	for _, paper := range store.papers {
		if paper.MaxMarks != 50 {
			t.Errorf("Expected MaxMarks 50, got %d", paper.MaxMarks)
		}
		numbers := make([]string, 0, len(paper.Questions))
		for _, q := range paper.Questions {
			numbers = append(numbers, q.Number)
		}
		if !reflect.DeepEqual(numbers, []string{"1)", "2a)", "2b)"}) {
			t.Errorf("Question order mismatch: %v", numbers)
		}
	}

	for _, img := range ras.created {
		if _, err := os.Stat(img); !os.IsNotExist(err) {
			t.Errorf("Transient page image %s was not removed", img)
		}
	}
}

func TestPipeline_NoFile(t *testing.T) {
	pipeline, _ := newTestPipeline(t, &fakeRecognizer{}, &fakeStore{})

	_, err := pipeline.Process(context.Background(), "", 0)
	if !errors.Is(err, ErrNoFile) {
		t.Errorf("Expected ErrNoFile, got %v", err)
	}
}

func TestPipeline_NoPapersFound(t *testing.T) {
	rec := &fakeRecognizer{pages: []string{"Recognized text without any institution header.\n1) Orphan question."}}
	pipeline, _ := newTestPipeline(t, rec, &fakeStore{})

	_, err := pipeline.Process(context.Background(), "exam.pdf", 1)
	if !errors.Is(err, ErrNoPapersFound) {
		t.Errorf("Expected ErrNoPapersFound, got %v", err)
	}
}

func TestPipeline_NoValidPapers(t *testing.T) {
	// Structure recognized (anchor, subject code) but zero question markers:
	// distinct from segmentation failure.
	text := "GITAM Examinations, 2024\nSubject Code: CSEN3001\nMax. Marks: 50\n" +
		strings.Repeat("General instructions without numbered questions. ", 10)
	rec := &fakeRecognizer{pages: []string{text}}
	store := &fakeStore{}
	pipeline, _ := newTestPipeline(t, rec, store)

	summary, err := pipeline.Process(context.Background(), "exam.pdf", 1)
	if !errors.Is(err, ErrNoValidPapers) {
		t.Fatalf("Expected ErrNoValidPapers, got %v", err)
	}
	if summary == nil || summary.Skipped != 1 {
		t.Errorf("Expected 1 skipped candidate in summary, got %+v", summary)
	}
	if len(store.papers) != 0 {
		t.Errorf("Nothing should be persisted, got %d papers", len(store.papers))
	}
}

func TestPipeline_RecognitionFailureAborts(t *testing.T) {
	rec := &fakeRecognizer{
		pages:    []string{samplePaper("CSEN3001"), "", samplePaper("CSEN3001")},
		failPage: 2,
	}
	store := &fakeStore{}
	pipeline, ras := newTestPipeline(t, rec, store)

	_, err := pipeline.Process(context.Background(), "exam.pdf", 3)

	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("Expected RecognitionError, got %v", err)
	}
	if recErr.Page != 2 {
		t.Errorf("Expected failure on page 2, got page %d", recErr.Page)
	}
	if len(ras.created) != 2 {
		t.Errorf("Page 3 should never be rasterized after the abort, got %d pages", len(ras.created))
	}
	for _, img := range ras.created {
		if _, statErr := os.Stat(img); !os.IsNotExist(statErr) {
			t.Errorf("Transient image %s must be removed even on failure", img)
		}
	}
	if len(store.papers) != 0 {
		t.Errorf("No partial-document salvage: expected 0 papers, got %d", len(store.papers))
	}
}

func TestPipeline_StoreConflictSkipsPaper(t *testing.T) {
	// Two candidates with the same (subjectCode, session, term) identity:
	// the second save conflicts and is skipped, the batch continues.
	rec := &fakeRecognizer{pages: []string{samplePaper("CSEN3001") + samplePaper("CSEN3001")}}
	store := &fakeStore{enforceID: true}
	pipeline, _ := newTestPipeline(t, rec, store)

	summary, err := pipeline.Process(context.Background(), "exam.pdf", 1)
	if err != nil {
		t.Fatalf("A per-paper conflict must not abort the batch: %v", err)
	}
	if len(summary.Saved) != 1 || summary.Skipped != 1 {
		t.Errorf("Expected 1 saved and 1 skipped, got %d saved %d skipped", len(summary.Saved), summary.Skipped)
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	run := func() []models.Paper {
		rec := &fakeRecognizer{pages: []string{samplePaper("CSEN3001"), samplePaper("ECEN4002")}}
		store := &fakeStore{}
		pipeline, _ := newTestPipeline(t, rec, store)
		if _, err := pipeline.Process(context.Background(), "exam.pdf", 2); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		return store.papers
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Re-running the pipeline on identical OCR text must yield identical structures")
	}
}
