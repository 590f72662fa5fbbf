package headline

import (
	"regexp"
	"strings"
)

var (
	// locationSplitRe detects the preposition that introduces the incident
	// location, marking the end of the airline/aircraft subject.
	locationSplitRe = regexp.MustCompile(`(?i)\b(?:at|near|over|enroute to|en route to)\b`)

	// subjectConjunctionRe splits subjects that describe multiple aircraft.
	subjectConjunctionRe = regexp.MustCompile(`(?i)\s+(?:and|&)\s+`)
)

// chunkStripChars are trimmed from conjunction-split chunks.
const chunkStripChars = " ,;/"

// extractSubject returns the portion of a cleaned title preceding the first
// location preposition, or the whole trimmed title when none is found.
func extractSubject(cleanTitle string) string {
	if cleanTitle == "" {
		return ""
	}
	if loc := locationSplitRe.FindStringIndex(cleanTitle); loc != nil {
		return strings.TrimSpace(cleanTitle[:loc[0]])
	}
	return strings.TrimSpace(cleanTitle)
}

// splitSubjectChunks splits a subject on "and"/"&" conjunctions, trims stray
// punctuation and drops empty results.
func splitSubjectChunks(subject string) []string {
	if subject == "" {
		return nil
	}
	var chunks []string
	for _, chunk := range subjectConjunctionRe.Split(subject, -1) {
		chunk = strings.Trim(chunk, chunkStripChars)
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
