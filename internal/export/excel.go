// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/exam-vault/internal/models"
)

// QuestionLoader fetches a paper's questions in source order.
type QuestionLoader func(ctx context.Context, paperID int64) ([]models.Question, error)

// PapersWorkbook builds an Excel workbook with one "Papers" summary sheet
// and one "Questions" sheet listing every question with its owning paper.
func PapersWorkbook(ctx context.Context, papers []models.Paper, loadQuestions QuestionLoader) (*excelize.File, error) {
	f := excelize.NewFile()

	const papersSheet = "Papers"
	const questionsSheet = "Questions"

	// The default sheet becomes the summary sheet.
	if err := f.SetSheetName("Sheet1", papersSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(questionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create questions sheet: %w", err)
	}

	paperHeaders := []interface{}{"ID", "Subject Code", "Subject Name", "Examination", "Session", "Term", "Max Marks", "Questions"}
	if err := f.SetSheetRow(papersSheet, "A1", &paperHeaders); err != nil {
		return nil, err
	}
	questionHeaders := []interface{}{"Paper ID", "Subject Code", "Number", "Text", "Marks", "Course Outcome"}
	if err := f.SetSheetRow(questionsSheet, "A1", &questionHeaders); err != nil {
		return nil, err
	}

	questionRow := 2
	for i, paper := range papers {
		questions, err := loadQuestions(ctx, paper.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for paper %d: %w", paper.ID, err)
		}

		row := []interface{}{
			paper.ID,
			paper.SubjectCode,
			paper.SubjectName,
			paper.ExaminationLabel,
			paper.Session,
			paper.Term,
			paper.MaxMarks,
			len(questions),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(papersSheet, cell, &row); err != nil {
			return nil, err
		}

		for _, q := range questions {
			qRow := []interface{}{paper.ID, paper.SubjectCode, q.Number, q.Text, q.Marks, q.CourseOutcome}
			qCell := fmt.Sprintf("A%d", questionRow)
			if err := f.SetSheetRow(questionsSheet, qCell, &qRow); err != nil {
				return nil, err
			}
			questionRow++
		}
	}

	return f, nil
}
