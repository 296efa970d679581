package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Item is one generated question/answer pair. IDs are assigned by the
// parser, sequential within a generation run.
type Item struct {
	ID      int
	Problem string `json:"problem"`
	Answer  string `json:"answer"`
}

// Subject classifies a topic.
type Subject struct {
	Name   string `json:"subject"`
	IsMath bool   `json:"is_math"`
}

// PoolRequest describes one item-pool generation.
type PoolRequest struct {
	Subject        string
	Topic          string
	PoolSize       int
	Mode           string // question style, e.g. "quiz"
	ReferenceImage []byte // optional source material
	ImageMIMEType  string
}

const poolPromptFormat = `You are preparing a calling list for a classroom bingo game.

Subject: %s
Topic: %s
Question style: %s

Produce exactly %d DISTINCT question/answer pairs as JSON:
{"items": [{"problem": "...", "answer": "..."}, ...]}

Rules:
- "problem" is read aloud by the caller; one short sentence.
- "answer" is printed inside a bingo cell; at most a few words.
- Every answer must be unique; no two items may share an answer.
- For mathematical content write answers as LaTeX between \( and \).
- Answers may use Markdown (inline code, bold) for non-math subjects.
- Respond ONLY with the JSON object, no commentary or markdown fences.`

const subjectPromptFormat = `Classify the school subject of the following bingo topic.

Topic: %s

Respond ONLY with JSON: {"subject": "<subject name>", "is_math": <true|false>}
"is_math" is true when the answers are mathematical notation.`

// GeneratePool asks the model for req.PoolSize question/answer pairs.
// Failures and unusable responses are returned to the caller; nothing is
// retried here.
func (c *Client) GeneratePool(ctx context.Context, req PoolRequest) ([]Item, error) {
	mode := req.Mode
	if mode == "" {
		mode = "quiz"
	}
	prompt := fmt.Sprintf(poolPromptFormat, req.Subject, req.Topic, mode, req.PoolSize)

	parts := []*genai.Part{{Text: prompt}}
	if len(req.ReferenceImage) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.ImageMIMEType, Data: req.ReferenceImage},
		})
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName,
		[]*genai.Content{{Role: "user", Parts: parts}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseItems([]byte(resp.Text()))
}

// DetectSubject classifies the topic, optionally using a reference image.
func (c *Client) DetectSubject(ctx context.Context, topic string, image []byte, mimeType string) (Subject, error) {
	parts := []*genai.Part{{Text: fmt.Sprintf(subjectPromptFormat, topic)}}
	if len(image) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mimeType, Data: image},
		})
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName,
		[]*genai.Content{{Role: "user", Parts: parts}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return Subject{}, fmt.Errorf("gemini generate: %w", err)
	}

	return parseSubject([]byte(resp.Text()))
}

// parseItems decodes the model's JSON, drops duplicate answers, and
// assigns sequential IDs.
func parseItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty gemini response")
	}

	var payload struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse items JSON: %w\nraw response: %s", err, data)
	}

	seen := make(map[string]bool, len(payload.Items))
	items := make([]Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		problem := strings.TrimSpace(it.Problem)
		answer := strings.TrimSpace(it.Answer)
		if problem == "" || answer == "" {
			continue
		}
		if seen[answer] {
			continue
		}
		seen[answer] = true
		items = append(items, Item{ID: len(items) + 1, Problem: problem, Answer: answer})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no usable items in response: %s", data)
	}
	return items, nil
}

// parseSubject decodes the classification response.
func parseSubject(data []byte) (Subject, error) {
	if len(data) == 0 {
		return Subject{}, fmt.Errorf("empty gemini response")
	}

	var s Subject
	if err := json.Unmarshal(data, &s); err != nil {
		return Subject{}, fmt.Errorf("parse subject JSON: %w\nraw response: %s", err, data)
	}
	if strings.TrimSpace(s.Name) == "" {
		return Subject{}, fmt.Errorf("missing subject in response: %s", data)
	}
	return s, nil
}
