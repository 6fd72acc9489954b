package provider

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"decimal", "20.5", 20.5, true},
		{"integer", "10", 10, true},
		{"bare fraction", ".485", 0.485, true},
		{"zero", "0", 0, true},
		{"surrounding whitespace", " 12.3 ", 12.3, true},
		{"negative", "-1.5", -1.5, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"text", "DNP", 0, false},
		{"thousands separator", "1,234", 0, false},
		{"trailing junk", "20.5pts", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
