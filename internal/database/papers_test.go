// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/exam-vault/internal/models"
)

func newTestStore(t *testing.T) *PaperStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewPaperStore(db)
	if err != nil {
		t.Fatalf("NewPaperStore failed: %v", err)
	}
	return store
}

func testPaper() *models.Paper {
	return &models.Paper{
		SubjectCode:      "CSEN3001",
		SubjectName:      "Data Structures and Algorithms",
		ExaminationLabel: "Monsoon 2024",
		Session:          "2024",
		Term:             "Monsoon",
		MaxMarks:         50,
		Questions: []models.Question{
			{Number: "1)", Text: "Explain the difference between a stack and a queue."},
			{Number: "2a)", Text: "Define a binary search tree."},
			{Number: "2b)", Text: "Write the in-order traversal algorithm."},
		},
	}
}

func TestPaperStore_SaveAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paper := testPaper()
	if err := store.SavePaper(ctx, paper); err != nil {
		t.Fatalf("SavePaper failed: %v", err)
	}
	if paper.ID == 0 {
		t.Errorf("Expected paper ID to be assigned")
	}

	papers, err := store.ListPapers(ctx)
	if err != nil {
		t.Fatalf("ListPapers failed: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("Expected 1 paper, got %d", len(papers))
	}
	if papers[0].SubjectCode != "CSEN3001" || papers[0].MaxMarks != 50 {
		t.Errorf("Paper fields mismatch: %+v", papers[0])
	}

	questions, err := store.GetQuestions(ctx, paper.ID)
	if err != nil {
		t.Fatalf("GetQuestions failed: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(questions))
	}
	expected := []string{"1)", "2a)", "2b)"}
	for i, q := range questions {
		if q.Number != expected[i] {
			t.Errorf("Question %d: expected number %q, got %q (source order must be preserved)", i, expected[i], q.Number)
		}
	}
}

func TestPaperStore_DuplicateIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SavePaper(ctx, testPaper()); err != nil {
		t.Fatalf("First SavePaper failed: %v", err)
	}

	err := store.SavePaper(ctx, testPaper())
	if !errors.Is(err, ErrDuplicatePaper) {
		t.Errorf("Expected ErrDuplicatePaper for same (subject, session, term), got %v", err)
	}
}

func TestPaperStore_DifferentTermAllowed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SavePaper(ctx, testPaper()); err != nil {
		t.Fatalf("First SavePaper failed: %v", err)
	}

	winter := testPaper()
	winter.Term = "Winter"
	winter.ExaminationLabel = "Winter 2024"
	if err := store.SavePaper(ctx, winter); err != nil {
		t.Errorf("Same subject in a different term must be allowed: %v", err)
	}
}
