// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"strings"
	"testing"
)

// samplePaper builds one plausible candidate paper body (well above the
// 300-character plausibility threshold) for the given subject code.
func samplePaper(code string) string {
	return "GITAM (Deemed to be University)\n" +
		"B.Tech. Degree Examinations, 2024\n" +
		"Data Structures and Algorithms\n" +
		"Time: 3 Hours    Max. Marks: 50\n" +
		"Subject Code: " + code + "   Monsoon 2024\n" +
		"Answer all questions. Each question carries equal weight.\n" +
		"1) Explain the difference between a stack and a queue with suitable examples.\n" +
		"2a) Define a binary search tree and state its ordering invariant in detail.\n" +
		"2b) Write the algorithm for in-order traversal and trace it on a sample tree.\n" +
		strings.Repeat("Additional instructions apply to all candidates. ", 4) + "\n"
}

func TestSegmenter_NoAnchors(t *testing.T) {
	s := NewSegmenter("GITAM")
	text := "This OCR output mentions no institution header at all.\n1) A question without a home."

	candidates := s.Segment(text)
	if len(candidates) != 0 {
		t.Errorf("Expected 0 candidates for text without anchors, got %d", len(candidates))
	}
}

func TestSegmenter_TwoPapers(t *testing.T) {
	s := NewSegmenter("GITAM")
	text := samplePaper("CSEN3001") + samplePaper("CSEN3001")

	candidates := s.Segment(text)
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	for i, c := range candidates {
		if !strings.Contains(c, "CSEN3001") {
			t.Errorf("Candidate %d missing subject code: %q", i, c[:60])
		}
	}
}

func TestSegmenter_ShortCandidateDiscarded(t *testing.T) {
	s := NewSegmenter("GITAM")
	// Valid anchor but only ~120 characters of content after trimming.
	text := "GITAM Institute of Technology\nCSEN3001 Monsoon 2024\nMax. Marks: 50\n1) Short fragment that is not a full paper.\n"
	if len(strings.TrimSpace(text)) >= minCandidateLen {
		t.Fatalf("test fixture too long: %d chars", len(strings.TrimSpace(text)))
	}

	candidates := s.Segment(text)
	if len(candidates) != 0 {
		t.Errorf("Expected short candidate to be discarded, got %d candidates", len(candidates))
	}
}

func TestSegmenter_AnchorToleratesPunctuation(t *testing.T) {
	s := NewSegmenter("GITAM")

	variants := []string{
		"G.I.T.A.M. (Deemed to be University)",
		"g i t a m university",
		"G. I. T. A. M Institute",
	}
	for _, header := range variants {
		text := header + "\n" + strings.Repeat("filler content for plausibility checks ", 10)
		candidates := s.Segment(text)
		if len(candidates) != 1 {
			t.Errorf("Header %q: expected 1 candidate, got %d", header, len(candidates))
		}
	}
}

func TestSegmenter_AnchorRequiresWordBoundary(t *testing.T) {
	s := NewSegmenter("GITAM")
	// "digit ammeter" contains the anchor letter sequence across a space; it
	// must not split the paper even when the tail would pass the length check.
	tail := "3) Use a three digit ammeter to measure the current in the circuit.\n" +
		strings.Repeat("Record every reading in the provided answer booklet. ", 8)
	text := samplePaper("ECEN4002") + tail

	candidates := s.Segment(text)
	if len(candidates) != 1 {
		t.Fatalf("Anchor letters inside ordinary words must not split a paper, got %d candidates", len(candidates))
	}
	if !strings.Contains(candidates[0], "digit ammeter") {
		t.Errorf("Candidate lost its tail after a mid-word anchor match")
	}
}

func TestSegmenter_LastCandidateRunsToEnd(t *testing.T) {
	s := NewSegmenter("GITAM")
	tail := "trailing answer key that belongs to the last paper"
	text := samplePaper("ECEN4002") + tail

	candidates := s.Segment(text)
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if !strings.HasSuffix(strings.TrimSpace(candidates[0]), tail) {
		t.Errorf("Last candidate should extend to end of text")
	}
}
