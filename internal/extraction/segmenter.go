// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extraction

import (
	"regexp"
	"strings"
)

// minCandidateLen is the plausibility threshold for a candidate paper.
// Shorter spans are treated as spurious matches (a header mentioned in
// passing, OCR noise duplicating a fragment) rather than real boundaries.
const minCandidateLen = 300

// defaultInstitution is the header anchor used when no override is
// configured.
const defaultInstitution = "GITAM"

// Segmenter splits a full-document OCR blob into candidate paper substrings
// using the institution header as a boundary anchor.
type Segmenter struct {
	anchor *regexp.Regexp
}

// NewSegmenter builds a segmenter for the given institution initials. The
// anchor is case-insensitive and tolerates stray dots and spacing between
// the letters, which scanned headers routinely pick up. The first initial
// must start a word so the letter sequence inside ordinary prose (e.g.
// "digit ammeter") never opens a phantom boundary.
func NewSegmenter(institution string) *Segmenter {
	if institution == "" {
		institution = defaultInstitution
	}
	var pattern strings.Builder
	pattern.WriteString(`(?i)\b`)
	for i, r := range institution {
		if i > 0 {
			pattern.WriteString(`[.\s]*`)
		}
		pattern.WriteString(regexp.QuoteMeta(string(r)))
	}
	return &Segmenter{anchor: regexp.MustCompile(pattern.String())}
}

// Segment returns candidate paper substrings in source order. Each candidate
// starts at one anchor occurrence and runs up to the next anchor, or to the
// end of the text for the last one. Candidates whose trimmed length is below
// the plausibility threshold are discarded. Zero anchors means zero
// candidates; the caller reports that as "no papers found".
func (s *Segmenter) Segment(fullText string) []string {
	starts := s.anchor.FindAllStringIndex(fullText, -1)
	if len(starts) == 0 {
		return nil
	}

	var candidates []string
	for i, loc := range starts {
		end := len(fullText)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		candidate := fullText[loc[0]:end]
		if len(strings.TrimSpace(candidate)) < minCandidateLen {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}
