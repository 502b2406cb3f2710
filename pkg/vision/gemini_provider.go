package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const baseURL = "https://generativelanguage.googleapis.com/v1/models"

const extractionPrompt = `You are looking at a photo of a student's handwritten math work or lesson notes.
Identify the math topic, the approximate grade level, and the concepts involved.
Respond with ONLY a JSON object, no prose, in this shape:
{"topic": "...", "grade_level": "...", "concepts": ["...", "..."], "summary": "one sentence"}`

type GeminiProvider struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type visionPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type visionContent struct {
	Parts []visionPart `json:"parts"`
}

type visionRequest struct {
	Contents []visionContent `json:"contents"`
}

type visionCandidate struct {
	Content visionContent `json:"content"`
}

type visionResponse struct {
	Candidates []visionCandidate `json:"candidates"`
}

func (p *GeminiProvider) ExtractLesson(ctx context.Context, imageData []byte, mimeType string) (*Extraction, error) {
	payload := visionRequest{
		Contents: []visionContent{{
			Parts: []visionPart{
				{Text: extractionPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", baseURL, p.ModelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status error, got status %d. with response body %s", res.StatusCode, string(resBody))
	}

	var visionRes visionResponse
	if err := json.Unmarshal(resBody, &visionRes); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(visionRes.Candidates) == 0 || len(visionRes.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model %s", p.ModelName)
	}

	return ParseExtraction(visionRes.Candidates[0].Content.Parts[0].Text)
}

// ParseExtraction decodes the model's JSON answer, tolerating markdown code
// fences around it.
func ParseExtraction(raw string) (*Extraction, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var extraction Extraction
	if err := json.Unmarshal([]byte(cleaned), &extraction); err != nil {
		return nil, fmt.Errorf("parse extraction JSON: %w", err)
	}
	if extraction.Topic == "" {
		return nil, fmt.Errorf("extraction missing topic")
	}
	return &extraction, nil
}
