// Package headline parses free-text aviation-incident headlines into
// structured (airline, aircraft, timestamp) records.
package headline

// Catalog holds the static reference data the parser matches against: known
// aircraft designations, manufacturer keywords, multi-word descriptors and
// trailing stopwords. A Catalog is read-only after construction and safe to
// share across goroutines.
type Catalog struct {
	// models maps a normalized key (lowercase, alphanumerics only) to the
	// canonical designation spelling.
	models    map[string]string
	keywords  map[string]struct{}
	multiWord [][]string
	stopwords map[string]struct{}
}

// NewCatalog builds a Catalog from explicit reference data. The model lookup
// is keyed by normalizeKey, so "A320neo" and "a320-neo" resolve to the same
// entry only when the catalog spells them to match.
func NewCatalog(models, keywords, stopwords []string, multiWord [][]string) *Catalog {
	c := &Catalog{
		models:    make(map[string]string, len(models)),
		keywords:  make(map[string]struct{}, len(keywords)),
		multiWord: multiWord,
		stopwords: make(map[string]struct{}, len(stopwords)),
	}
	for _, name := range models {
		c.models[normalizeKey(name)] = name
	}
	for _, kw := range keywords {
		c.keywords[kw] = struct{}{}
	}
	for _, sw := range stopwords {
		c.stopwords[sw] = struct{}{}
	}
	return c
}

// DefaultCatalog returns the built-in reference data covering the aircraft
// types that commonly appear on avherald.com.
func DefaultCatalog() *Catalog {
	return NewCatalog(aircraftModelNames, manufacturerKeywords, aircraftStopwords, multiWordDescriptors)
}

func (c *Catalog) isKeyword(lowered string) bool {
	_, ok := c.keywords[lowered]
	return ok
}

func (c *Catalog) isStopword(lowered string) bool {
	_, ok := c.stopwords[lowered]
	return ok
}

// lookupModel returns the canonical designation for a normalized key.
func (c *Catalog) lookupModel(key string) (string, bool) {
	name, ok := c.models[key]
	return name, ok
}
