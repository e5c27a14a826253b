// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/exam-vault/internal/models"
)

// ErrDuplicatePaper is returned when a paper with the same
// (subject_code, session, term) identity has already been persisted.
var ErrDuplicatePaper = errors.New("paper already exists for this subject, session and term")

// PaperStore handles paper and question persistence in SQLite.
type PaperStore struct {
	db *sql.DB
}

// NewPaperStore creates a paper store and ensures its schema exists.
func NewPaperStore(db *sql.DB) (*PaperStore, error) {
	store := &PaperStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize papers schema: %w", err)
	}
	return store, nil
}

// initSchema creates the papers and questions tables if they don't exist.
// Paper identity is (subject_code, session, term); the unique index is what
// turns a re-upload into a per-paper conflict instead of a silent duplicate.
func (s *PaperStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS papers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_code TEXT NOT NULL,
		subject_name TEXT,
		examination_label TEXT,
		session TEXT,
		term TEXT,
		max_marks INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(subject_code, session, term)
	);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		paper_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		number TEXT NOT NULL,
		text TEXT NOT NULL,
		marks TEXT,
		course_outcome TEXT,
		FOREIGN KEY (paper_id) REFERENCES papers(id)
	);

	CREATE INDEX IF NOT EXISTS idx_questions_paper_id ON questions(paper_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePaper persists a paper and its questions in one transaction. Question
// positions record source order so reads never depend on rowid ordering.
// A uniqueness violation is reported as ErrDuplicatePaper.
func (s *PaperStore) SavePaper(ctx context.Context, paper *models.Paper) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO papers (subject_code, subject_name, examination_label, session, term, max_marks) VALUES (?, ?, ?, ?, ?, ?)",
		paper.SubjectCode,
		paper.SubjectName,
		paper.ExaminationLabel,
		paper.Session,
		paper.Term,
		paper.MaxMarks,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicatePaper
		}
		return fmt.Errorf("failed to insert paper: %w", err)
	}

	paperID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read paper id: %w", err)
	}

	for i, q := range paper.Questions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO questions (paper_id, position, number, text, marks, course_outcome) VALUES (?, ?, ?, ?, ?, ?)",
			paperID, i, q.Number, q.Text, q.Marks, q.CourseOutcome,
		); err != nil {
			return fmt.Errorf("failed to insert question %s: %w", q.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit paper: %w", err)
	}

	paper.ID = paperID
	return nil
}

// ListPapers returns all persisted papers, newest first, without their
// question bodies.
func (s *PaperStore) ListPapers(ctx context.Context) ([]models.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, subject_code, subject_name, examination_label, session, term, max_marks, created_at FROM papers ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []models.Paper
	for rows.Next() {
		var p models.Paper
		if err := rows.Scan(&p.ID, &p.SubjectCode, &p.SubjectName, &p.ExaminationLabel, &p.Session, &p.Term, &p.MaxMarks, &p.CreatedAt); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// GetQuestions returns a paper's questions in source order.
func (s *PaperStore) GetQuestions(ctx context.Context, paperID int64) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT number, text, IFNULL(marks, ''), IFNULL(course_outcome, '') FROM questions WHERE paper_id = ? ORDER BY position",
		paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.Number, &q.Text, &q.Marks, &q.CourseOutcome); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
