// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"regexp"
	"strings"

	"github.com/exam-vault/internal/models"
)

// A question marker is an optional "Q. No." prefix followed by digits, an
// optional lowercase sub-letter and a closing parenthesis, anchored at the
// start of a line (or of the candidate). The whole marker, prefix included,
// must sit on one line; only spaces and tabs may separate its parts. The
// capture group is the raw marker, e.g. "2a)".
var questionMarkerPattern = regexp.MustCompile(`(?m)^[ \t]*(?:Q\.?[ \t]*No\.?[ \t]*)?([0-9]+[a-z]?\))`)

// marker records one question-marker occurrence inside a candidate. start is
// the offset of the full match (including any "Q. No." prefix) so that the
// previous question's body stops before the prefix, not inside it.
type marker struct {
	number string
	start  int // offset of the full marker match
	end    int // offset just past the marker, where the body begins
}

// TokenizeQuestions slices one candidate paper into ordered question
// records. All marker positions are collected up front and each body is the
// span between consecutive markers; the last body runs to the end of the
// candidate. This keeps the one-marker look-ahead an explicit step instead
// of a mutable scan cursor, so a marker is never revisited or skipped.
//
// Markers whose body trims to nothing are dropped: two adjacent markers with
// nothing between them are a false positive, not an empty question.
func TokenizeQuestions(candidate string) []models.Question {
	matches := questionMarkerPattern.FindAllStringSubmatchIndex(candidate, -1)
	if len(matches) == 0 {
		return nil
	}

	markers := make([]marker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, marker{
			number: candidate[m[2]:m[3]],
			start:  m[0],
			end:    m[3],
		})
	}

	var questions []models.Question
	for i, mk := range markers {
		bodyEnd := len(candidate)
		if i+1 < len(markers) {
			bodyEnd = markers[i+1].start
		}
		body := strings.TrimSpace(candidate[mk.end:bodyEnd])
		if body == "" {
			continue
		}
		questions = append(questions, models.Question{
			Number: mk.number,
			Text:   body,
		})
	}
	return questions
}
