// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"strings"
	"testing"
)

func TestAssemblePaper_Valid(t *testing.T) {
	paper, ok := AssemblePaper(samplePaper("CSEN3001"))

	if !ok {
		t.Fatalf("Expected candidate to pass the validity gate")
	}
	if paper.SubjectCode != "CSEN3001" {
		t.Errorf("SubjectCode: expected CSEN3001, got %q", paper.SubjectCode)
	}
	if paper.MaxMarks != 50 {
		t.Errorf("MaxMarks: expected 50, got %d", paper.MaxMarks)
	}
	if len(paper.Questions) != 3 {
		t.Errorf("Expected 3 questions, got %d", len(paper.Questions))
	}
}

func TestAssemblePaper_NoQuestions(t *testing.T) {
	// Subject code present but no question markers: fails the gate, is
	// reported for inspection, not persisted.
	text := "GITAM Examinations, 2024\nSubject Code: CSEN3001\nMax. Marks: 50\n" +
		strings.Repeat("General instructions without any numbered questions. ", 8)

	paper, ok := AssemblePaper(text)
	if ok {
		t.Errorf("Candidate without questions must fail the validity gate")
	}
	if paper.SubjectCode != "CSEN3001" {
		t.Errorf("Metadata should still be extracted, got SubjectCode %q", paper.SubjectCode)
	}
}

func TestAssemblePaper_NoSubjectCode(t *testing.T) {
	text := "GITAM Examinations, 2024\n1) A question with no subject code anywhere.\n" +
		strings.Repeat("padding text ", 30)

	paper, ok := AssemblePaper(text)
	if ok {
		t.Errorf("Candidate without a subject code must fail the validity gate")
	}
	if len(paper.Questions) == 0 {
		t.Errorf("Questions should still be tokenized for the skip report")
	}
}
