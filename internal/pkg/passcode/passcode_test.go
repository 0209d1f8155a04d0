package passcode

import "testing"

func TestNumericGenerate(t *testing.T) {
	t.Run("LengthAndCharset", func(t *testing.T) {
		gen := NewNumeric(6)

		for range 200 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if len(code) != 6 {
				t.Fatalf("expected 6 digits, got %q", code)
			}
			for i := range len(code) {
				if code[i] < '0' || code[i] > '9' {
					t.Fatalf("non-digit character in code %q", code)
				}
			}
		}
	})

	t.Run("DefaultsOnBadLength", func(t *testing.T) {
		gen := NewNumeric(0)

		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != DefaultLength {
			t.Fatalf("expected default length %d, got %q", DefaultLength, code)
		}
	})

	t.Run("CodesVary", func(t *testing.T) {
		gen := NewNumeric(8)

		seen := make(map[string]struct{})
		for range 50 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			seen[code] = struct{}{}
		}

		// 50 draws from a 10^8 space colliding down to a handful would mean
		// broken randomness.
		if len(seen) < 45 {
			t.Fatalf("expected distinct codes, got %d unique of 50", len(seen))
		}
	})
}
