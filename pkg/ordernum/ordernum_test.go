package ordernum

import (
	"strings"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	number := Generate()

	if !strings.HasPrefix(number, "ORD-") {
		t.Fatalf("Generate() = %q, want ORD- prefix", number)
	}
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("Generate() = %q, want ORD-<timestamp>-<suffix>", number)
	}
	if len(parts[2]) != suffixLength {
		t.Errorf("suffix %q has length %d, want %d", parts[2], len(parts[2]), suffixLength)
	}
	for _, c := range parts[2] {
		if !strings.ContainsRune(suffixAlphabet, c) {
			t.Errorf("suffix %q contains %q outside the alphabet", parts[2], c)
		}
	}
	if number != strings.ToUpper(number) {
		t.Errorf("Generate() = %q, want uppercase", number)
	}
}

func TestGenerateMostlyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := Generate()
		if seen[number] {
			t.Fatalf("duplicate order number %q after %d generations", number, i)
		}
		seen[number] = true
	}
}
