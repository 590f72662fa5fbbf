package headline

import "strings"

// maxModelTokens bounds how many consecutive tokens are joined when matching
// multi-word catalog entries like "Superjet 100" or "ATR 72".
const maxModelTokens = 6

// findAircraftStart locates the token index where the aircraft description
// begins. Three strategies apply in strict priority order: known-model
// matching, multi-word descriptor matching, then keyword/type-code matching.
// The boolean is false when no strategy matches.
func (p *Parser) findAircraftStart(rawTokens, strippedTokens, loweredTokens []string) (int, bool) {
	if idx, ok := p.findAircraftStartByModel(rawTokens); ok {
		return idx, true
	}
	for _, pattern := range p.catalog.multiWord {
		size := len(pattern)
		for idx := 0; idx+size <= len(loweredTokens); idx++ {
			if tokensEqual(loweredTokens[idx:idx+size], pattern) {
				return idx, true
			}
		}
	}
	for idx, token := range strippedTokens {
		if p.tokenMatchesAircraft(token) {
			return idx, true
		}
	}
	return 0, false
}

// findAircraftStartByModel scans left to right for the first index at which
// some token run matches a known aircraft model.
func (p *Parser) findAircraftStartByModel(rawTokens []string) (int, bool) {
	for idx := range rawTokens {
		if p.matchKnownModel(rawTokens[idx:]) != nil {
			return idx, true
		}
	}
	return 0, false
}

// matchKnownModel returns the leading slice of rawTokens that matches a
// catalog entry, preferring the longest run (up to maxModelTokens). A run
// qualifies only if every token survives punctuation stripping. Returns nil
// when no prefix matches.
func (p *Parser) matchKnownModel(rawTokens []string) []string {
	sanitized := make([]string, len(rawTokens))
	for i, tok := range rawTokens {
		sanitized[i] = normalizeToken(tok)
	}
	maxLen := len(sanitized)
	if maxLen > maxModelTokens {
		maxLen = maxModelTokens
	}
	for length := maxLen; length >= 1; length-- {
		segment := sanitized[:length]
		if hasEmptyToken(segment) {
			continue
		}
		key := normalizeKey(strings.Join(segment, " "))
		if _, ok := p.catalog.lookupModel(key); ok {
			return rawTokens[:length]
		}
	}
	return nil
}

// tokenMatchesAircraft reports whether a stripped token is likely to start an
// aircraft description: either a manufacturer keyword, or a type-code-shaped
// token (at least 3 alphanumeric characters mixing letters and digits).
func (p *Parser) tokenMatchesAircraft(token string) bool {
	if token == "" {
		return false
	}
	if p.catalog.isKeyword(strings.ToLower(token)) {
		return true
	}
	alnum := stripNonAlnum(token)
	if len(alnum) < 3 {
		return false
	}
	return containsLetter(alnum) && containsDigit(alnum)
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasEmptyToken(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "" {
			return true
		}
	}
	return false
}
