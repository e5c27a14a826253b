// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package models

import "time"

// Paper represents one logical examination paper recovered from a scanned
// document, with its metadata and the questions in source order.
type Paper struct {
	ID               int64      `json:"id,omitempty"`
	SubjectCode      string     `json:"subject_code"`
	SubjectName      string     `json:"subject_name"`
	ExaminationLabel string     `json:"examination_label"`
	Session          string     `json:"session"` // 4-digit year from the examination label
	Term             string     `json:"term"`    // season from the examination label
	MaxMarks         int        `json:"max_marks"`
	Questions        []Question `json:"questions"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
}

// Question is owned by exactly one Paper; it has no independent lifecycle.
// Marks and CourseOutcome are left empty at extraction time and filled by a
// later enrichment step outside this service.
type Question struct {
	Number        string `json:"number"` // raw marker as captured, e.g. "2a)"
	Text          string `json:"text"`
	Marks         string `json:"marks,omitempty"`
	CourseOutcome string `json:"course_outcome,omitempty"`
}

// Persistable reports whether the paper passes the minimal validity gate:
// a non-empty subject code and at least one question.
func (p *Paper) Persistable() bool {
	return p.SubjectCode != "" && len(p.Questions) > 0
}
