package vision

import "context"

// Extraction is the structured description the vision model derives from a
// photographed lesson or worksheet.
type Extraction struct {
	Topic      string   `json:"topic"`
	GradeLevel string   `json:"grade_level"`
	Concepts   []string `json:"concepts"`
	Summary    string   `json:"summary,omitempty"`
}

// Provider turns a lesson photo into an Extraction.
type Provider interface {
	ExtractLesson(ctx context.Context, imageData []byte, mimeType string) (*Extraction, error)
}
