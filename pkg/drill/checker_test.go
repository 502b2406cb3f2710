package drill

import "testing"

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name  string
		given string
		want  string
		match bool
	}{
		{"exact match", "12", "12", true},
		{"whitespace trimmed", "  12 ", "12", true},
		{"case insensitive text", "One Half", "one half", true},
		{"numeric within tolerance", "0.333", "0.33", true},
		{"numeric exactly at tolerance", "0.34", "0.33", false},
		{"numeric equal different form", "3.0", "3", true},
		{"negative numbers", "-4", "-4.0", true},
		{"wrong number", "13", "12", false},
		{"wrong text", "one third", "one half", false},
		{"number vs text", "two", "2", false},
		{"empty given", "", "12", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAnswer(tt.given, tt.want); got != tt.match {
				t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.given, tt.want, got, tt.match)
			}
		})
	}
}
