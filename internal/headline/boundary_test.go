package headline

import (
	"strings"
	"testing"
)

func splitForBoundary(chunk string) (raw, stripped, lowered []string) {
	raw = strings.Fields(chunk)
	stripped = make([]string, len(raw))
	lowered = make([]string, len(raw))
	for i, tok := range raw {
		stripped[i] = normalizeToken(tok)
		lowered[i] = strings.ToLower(stripped[i])
	}
	return raw, stripped, lowered
}

func TestFindAircraftStart(t *testing.T) {
	parser := NewParser(DefaultCatalog())

	tests := []struct {
		name  string
		chunk string
		want  int
		found bool
	}{
		// Known-model matches.
		{name: "model at start", chunk: "B738 tail strike", want: 0, found: true},
		{name: "model after airline", chunk: "Ryanair B738", want: 1, found: true},
		{name: "multi token model", chunk: "Sukhoi Superjet 100", want: 1, found: true},
		{name: "hyphenated model", chunk: "Piper PA-28", want: 1, found: true},
		// Multi-word descriptor matches.
		{name: "king air", chunk: "Provincial King Air", want: 1, found: true},
		{name: "twin otter case folded", chunk: "Kenn Borek TWIN OTTER", want: 2, found: true},
		// Keyword / type-code matches.
		{name: "manufacturer keyword", chunk: "Delta Boeing jet", want: 1, found: true},
		{name: "type code shape", chunk: "Canada BCS3", want: 1, found: true},
		{name: "parenthesized code", chunk: "Jazz (DH8D)", want: 1, found: true},
		// Non-matches.
		{name: "short mixed token", chunk: "Delta A1 service", found: false},
		{name: "digits only", chunk: "Flight 1549", found: false},
		{name: "letters only", chunk: "Unknown incident", found: false},
		{name: "empty", chunk: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, stripped, lowered := splitForBoundary(tt.chunk)
			got, found := parser.findAircraftStart(raw, stripped, lowered)
			if found != tt.found {
				t.Fatalf("findAircraftStart(%q) found = %v, want %v", tt.chunk, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("findAircraftStart(%q) = %d, want %d", tt.chunk, got, tt.want)
			}
		})
	}
}

func TestMatchKnownModelLongestRun(t *testing.T) {
	parser := NewParser(DefaultCatalog())

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "prefers longer run",
			tokens: []string{"A220", "300", "overran"},
			want:   []string{"A220", "300"},
		},
		{
			name:   "single token",
			tokens: []string{"A332", "enroute"},
			want:   []string{"A332"},
		},
		{
			name:   "punctuation preserved in result",
			tokens: []string{"(A332)", "enroute"},
			want:   []string{"(A332)"},
		},
		{
			name:   "no match",
			tokens: []string{"engine", "failure"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.matchKnownModel(tt.tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("matchKnownModel(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("matchKnownModel(%v)[%d] = %q, want %q", tt.tokens, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenMatchesAircraft(t *testing.T) {
	parser := NewParser(DefaultCatalog())

	tests := []struct {
		token string
		want  bool
	}{
		{token: "Boeing", want: true},
		{token: "cessna", want: true},
		{token: "B738", want: true},
		{token: "PA-28", want: true},
		{token: "A1", want: false},   // too short
		{token: "1549", want: false}, // no letters
		{token: "Lufthansa", want: false},
		{token: "", want: false},
	}

	for _, tt := range tests {
		if got := parser.tokenMatchesAircraft(tt.token); got != tt.want {
			t.Errorf("tokenMatchesAircraft(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
