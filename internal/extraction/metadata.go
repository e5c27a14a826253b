// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata holds the scalar fields recovered from one candidate paper.
// Every field degrades to its zero value when its probe misses; extraction
// of one field never blocks extraction of another.
type Metadata struct {
	SubjectCode      string
	SubjectName      string
	ExaminationLabel string
	Session          string
	Term             string
	MaxMarks         int
}

var (
	// A run of >=4 uppercase letters followed by >=3 digits, optionally twice
	// with a "/" separator for combined/joint-subject papers.
	subjectCodePattern = regexp.MustCompile(`\b([A-Z]{4,}[0-9]{3,}(?:\s*/\s*[A-Z]{4,}[0-9]{3,})?)\b`)

	// Subject name sits between the examination announcement (with its
	// 4-digit year) and the "Time:" or "Max. Marks:" marker.
	subjectNamePattern = regexp.MustCompile(`(?is)examinations?[,.\s]+[0-9]{4}\s*(.+?)\s*(?:time\s*:|max\.?\s*marks\s*:)`)

	// Season keyword plus a 4-digit year, e.g. "Monsoon 2024".
	examLabelPattern = regexp.MustCompile(`(?i)\b(monsoon|winter)\s+([0-9]{4})\b`)

	// Token after "Max. Marks:"; parsed as an integer, 0 on failure.
	maxMarksPattern = regexp.MustCompile(`(?i)max\.?\s*marks\s*:?\s*([0-9A-Za-z]+)`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// probe applies one pattern to the text and reports the first capture group,
// trimmed, plus whether it matched at all.
func probe(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// probeSubjectCode extracts the institutional subject code.
func probeSubjectCode(text string) (string, bool) {
	return probe(subjectCodePattern, text)
}

// probeSubjectName extracts the subject name with embedded newlines
// collapsed to spaces and runs of whitespace collapsed to one space.
func probeSubjectName(text string) (string, bool) {
	name, ok := probe(subjectNamePattern, text)
	if !ok {
		return "", false
	}
	name = strings.ReplaceAll(name, "\n", " ")
	return whitespaceRun.ReplaceAllString(name, " "), true
}

// probeExaminationLabel extracts the season+year token along with its parts.
func probeExaminationLabel(text string) (label, term, session string, ok bool) {
	m := examLabelPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", "", false
	}
	return m[1] + " " + m[2], m[1], m[2], true
}

// probeMaxMarks extracts the maximum marks value; a missing marker or a
// non-numeric token both default to 0.
func probeMaxMarks(text string) (int, bool) {
	raw, ok := probe(maxMarksPattern, text)
	if !ok {
		return 0, false
	}
	marks, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return marks, true
}

// ExtractMetadata runs the independent field probes over one candidate paper
// and fills defaults for whatever they missed. OCR text is noisy and field
// order varies between scans, so each probe is tolerant on its own rather
// than part of one combined grammar.
func ExtractMetadata(text string) Metadata {
	var meta Metadata

	if code, ok := probeSubjectCode(text); ok {
		meta.SubjectCode = code
	}
	if name, ok := probeSubjectName(text); ok {
		meta.SubjectName = name
	}
	if label, term, session, ok := probeExaminationLabel(text); ok {
		meta.ExaminationLabel = label
		meta.Term = term
		meta.Session = session
	}
	if marks, ok := probeMaxMarks(text); ok {
		meta.MaxMarks = marks
	}

	return meta
}
