package headline

import "strings"

// Unknown is the sentinel for an undeterminable airline or aircraft field.
// Parsed entries never carry empty strings.
const Unknown = "Unknown"

// parseChunk splits a single subject chunk into airline and aircraft strings.
// Tokens before the aircraft boundary form the airline name; tokens from the
// boundary onward form the aircraft description.
func (p *Parser) parseChunk(chunk string) (airline, aircraft string) {
	rawTokens := strings.Fields(chunk)
	if len(rawTokens) == 0 {
		return Unknown, Unknown
	}

	strippedTokens := make([]string, len(rawTokens))
	loweredTokens := make([]string, len(rawTokens))
	for i, tok := range rawTokens {
		strippedTokens[i] = normalizeToken(tok)
		loweredTokens[i] = strings.ToLower(strippedTokens[i])
	}

	start, found := p.findAircraftStart(rawTokens, strippedTokens, loweredTokens)
	if !found {
		return Unknown, strings.TrimSpace(chunk)
	}

	airlineTokens := rawTokens[:start]
	aircraftTokens := rawTokens[start:]

	if p.tokensAreManufacturers(airlineTokens) {
		// Headlines like "Boeing 737" name no operator; the manufacturer
		// tokens belong to the aircraft description.
		airline = Unknown
		aircraftTokens = append(append([]string{}, airlineTokens...), aircraftTokens...)
	} else {
		// Pure-numeric tokens (flight numbers) are excluded from the
		// airline name.
		var alphaTokens []string
		for _, tok := range airlineTokens {
			if containsLetter(tok) {
				alphaTokens = append(alphaTokens, tok)
			}
		}
		airline = strings.TrimSpace(strings.Join(alphaTokens, " "))
		if airline == "" {
			airline = Unknown
			var numericTokens []string
			for _, tok := range airlineTokens {
				if !containsLetter(tok) {
					numericTokens = append(numericTokens, tok)
				}
			}
			if len(numericTokens) > 0 {
				aircraftTokens = append(append([]string{}, numericTokens...), aircraftTokens...)
			}
		}
	}

	aircraftTokens = p.trimAircraftTokens(aircraftTokens)
	aircraft = strings.Trim(strings.Join(aircraftTokens, " "), " ,.;")
	if aircraft == "" {
		aircraft = Unknown
	}
	return airline, aircraft
}

// tokensAreManufacturers reports whether every token is a manufacturer/series
// keyword. An empty slice is not a manufacturer prefix.
func (p *Parser) tokensAreManufacturers(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		stripped := strings.ToLower(normalizeToken(tok))
		if stripped == "" || !p.catalog.isKeyword(stripped) {
			return false
		}
	}
	return true
}

// trimAircraftTokens removes trailing descriptive words from the aircraft
// token list. An exact catalog match wins outright and discards everything
// after it; otherwise tokens accumulate until a stopword is seen, but never
// to the point of emptying the description.
func (p *Parser) trimAircraftTokens(rawTokens []string) []string {
	if len(rawTokens) == 0 {
		return rawTokens
	}
	if known := p.matchKnownModel(rawTokens); known != nil {
		return known
	}
	var trimmed []string
	for _, tok := range rawTokens {
		lowered := strings.ToLower(normalizeToken(tok))
		if lowered != "" && len(trimmed) > 0 && p.catalog.isStopword(lowered) {
			break
		}
		trimmed = append(trimmed, tok)
	}
	if len(trimmed) == 0 {
		return rawTokens
	}
	return trimmed
}
