// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import "github.com/exam-vault/internal/models"

// AssemblePaper combines the metadata probes and the question tokenizer
// output for one candidate into a Paper value. The second return value is
// the validity gate: only papers with a subject code and at least one
// question are eligible for persistence. Failing the gate is a skip, not an
// error, and no field-level repair is attempted.
func AssemblePaper(candidate string) (models.Paper, bool) {
	meta := ExtractMetadata(candidate)

	paper := models.Paper{
		SubjectCode:      meta.SubjectCode,
		SubjectName:      meta.SubjectName,
		ExaminationLabel: meta.ExaminationLabel,
		Session:          meta.Session,
		Term:             meta.Term,
		MaxMarks:         meta.MaxMarks,
		Questions:        TokenizeQuestions(candidate),
	}

	return paper, paper.Persistable()
}
