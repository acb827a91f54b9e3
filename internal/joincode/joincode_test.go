package joincode

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
	}{
		{
			name:       "generates codes of correct length and alphabet",
			iterations: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.iterations; i++ {
				code, err := Generate()
				if err != nil {
					t.Fatalf("Generate() error: %v", err)
				}
				if len(code) != Length {
					t.Errorf("code length = %d, want %d", len(code), Length)
				}
				for _, c := range code {
					if !strings.ContainsRune(alphabet, c) {
						t.Errorf("code %q contains character %q outside alphabet", code, c)
					}
				}
			}
		})
	}
}

func TestGenerateExcludesAmbiguousCharacters(t *testing.T) {
	for _, forbidden := range []string{"0", "O", "1", "I"} {
		if strings.Contains(alphabet, forbidden) {
			t.Errorf("alphabet contains ambiguous character %q", forbidden)
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if seen[code] {
			t.Errorf("duplicate code generated: %s", code)
		}
		seen[code] = true
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "abcd2345", "ABCD2345"},
		{"surrounding whitespace", "  ABCD2345\n", "ABCD2345"},
		{"mixed case", "aBcD2345", "ABCD2345"},
		{"already normalized", "WXYZ6789", "WXYZ6789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
