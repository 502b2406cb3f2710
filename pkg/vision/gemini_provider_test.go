package vision

import "testing"

func TestParseExtraction(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTopic string
		wantErr   bool
	}{
		{
			name:      "plain JSON",
			raw:       `{"topic": "fractions", "grade_level": "4", "concepts": ["equivalent fractions"]}`,
			wantTopic: "fractions",
		},
		{
			name:      "fenced JSON",
			raw:       "```json\n{\"topic\": \"long division\", \"grade_level\": \"5\", \"concepts\": []}\n```",
			wantTopic: "long division",
		},
		{
			name:      "fenced without language tag",
			raw:       "```\n{\"topic\": \"multiplication\", \"grade_level\": \"3\", \"concepts\": [\"arrays\"]}\n```",
			wantTopic: "multiplication",
		},
		{
			name:    "missing topic",
			raw:     `{"grade_level": "4", "concepts": []}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			raw:     "I couldn't read the image.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtraction(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Topic != tt.wantTopic {
				t.Errorf("topic = %q, want %q", got.Topic, tt.wantTopic)
			}
		})
	}
}
