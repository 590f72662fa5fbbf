package headline

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

// Entry is one structured record extracted from a headline. Airline and
// Aircraft are never empty; they hold the Unknown sentinel when the field
// could not be determined. Timestamp is nil when the headline carries no
// parseable date.
type Entry struct {
	Title     string `json:"title"`
	Timestamp *int64 `json:"timestamp"`
	Airline   string `json:"airline"`
	Aircraft  string `json:"aircraft"`
}

// secondaryTitlePrefix marks synthesized titles for headlines that describe
// more than one aircraft, keeping stored titles unique per entry.
const secondaryTitlePrefix = "[标记"

var (
	// dateRe matches embedded date phrases like "Mar 31st 2025".
	dateRe = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}(?:st|nd|rd|th)\s+\d{4}`)

	// ordinalSuffixRe strips ordinal suffixes, but only directly after a digit.
	ordinalSuffixRe = regexp.MustCompile(`(\d)(?:st|nd|rd|th)`)
)

// Parser turns raw headline strings into structured entries. It holds only
// the immutable catalog, so a single Parser is safe for concurrent use.
type Parser struct {
	catalog *Catalog

	// Verbose enables diagnostic logging for conditions that degrade to
	// sentinel values, such as unparsable date text.
	Verbose bool
}

// NewParser returns a Parser backed by the given catalog.
func NewParser(catalog *Catalog) *Parser {
	return &Parser{catalog: catalog}
}

// DateToTimestamp converts a date phrase like "Mar 31st 2025" into the UTC
// timestamp for midnight of that date. The boolean is false for empty or
// unparsable input.
func DateToTimestamp(dateString string) (int64, bool) {
	if dateString == "" {
		return 0, false
	}
	cleaned := ordinalSuffixRe.ReplaceAllString(dateString, "$1")
	t, err := time.Parse("Jan 2 2006", cleaned)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

// ProcessTitle parses a raw headline into one or more entries. It always
// returns at least one entry and never fails: malformed input degrades to
// Unknown fields. Each call is independent; the Parser holds no state across
// calls.
func (p *Parser) ProcessTitle(originalTitle string) []Entry {
	title := strings.TrimSpace(originalTitle)

	// A trailing comma-delimited clause is descriptive, not structural.
	titleForParsing := title
	if idx := strings.Index(title, ","); idx >= 0 {
		titleForParsing = strings.TrimSpace(title[:idx])
	}

	var timestamp *int64
	if dateStr := dateRe.FindString(titleForParsing); dateStr != "" {
		if ts, ok := DateToTimestamp(dateStr); ok {
			timestamp = &ts
			titleForParsing = strings.TrimSpace(strings.ReplaceAll(titleForParsing, " on "+dateStr, ""))
		} else if p.Verbose {
			log.Printf("warning: could not parse date string: %q", dateStr)
		}
	}

	pairs := p.extractAircraftEntries(titleForParsing)
	entries := make([]Entry, 0, len(pairs))
	for idx, pair := range pairs {
		entries = append(entries, Entry{
			Title:     buildVariantTitle(title, pair.airline, idx),
			Timestamp: timestamp,
			Airline:   pair.airline,
			Aircraft:  pair.aircraft,
		})
	}
	return entries
}

type aircraftPair struct {
	airline  string
	aircraft string
}

// extractAircraftEntries returns one (airline, aircraft) pair per aircraft
// named in the cleaned title. Multi-aircraft splitting only holds when every
// conjunction-delimited chunk yields a determinable aircraft; otherwise the
// whole subject parses as a single chunk.
func (p *Parser) extractAircraftEntries(cleanTitle string) []aircraftPair {
	subject := extractSubject(cleanTitle)
	chunks := splitSubjectChunks(subject)
	if len(chunks) > 0 {
		parsed := make([]aircraftPair, 0, len(chunks))
		for _, chunk := range chunks {
			airline, aircraft := p.parseChunk(chunk)
			parsed = append(parsed, aircraftPair{airline, aircraft})
		}
		if chunksAreValid(parsed) {
			return parsed
		}
	}
	// An empty subject (the title starts with a location preposition) falls
	// back to the whole cleaned title.
	target := subject
	if target == "" {
		target = cleanTitle
	}
	airline, aircraft := p.parseChunk(target)
	return []aircraftPair{{airline, aircraft}}
}

// chunksAreValid reports whether parsed chunks represent distinct, valid
// aircraft entries: at least two, none with an Unknown aircraft.
func chunksAreValid(parsed []aircraftPair) bool {
	if len(parsed) < 2 {
		return false
	}
	for _, pair := range parsed {
		if pair.aircraft == Unknown {
			return false
		}
	}
	return true
}

// buildVariantTitle keeps entry 0 on the original title and gives later
// entries a bracketed marker (the airline, or a positional index when the
// airline is Unknown) so storage layers with unique titles accept them.
func buildVariantTitle(originalTitle, airline string, variantIndex int) string {
	if variantIndex == 0 {
		return originalTitle
	}
	suffix := airline
	if airline == Unknown {
		suffix = fmt.Sprintf("#%d", variantIndex+1)
	}
	return fmt.Sprintf("%s %s] %s", secondaryTitlePrefix, suffix, originalTitle)
}
