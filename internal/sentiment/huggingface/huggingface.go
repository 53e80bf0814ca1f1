package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trendforge/internal/api"
	"trendforge/internal/interfaces"
	"trendforge/internal/store"
	"trendforge/internal/trace"
	"trendforge/internal/types"
)

// Classifier calls a hosted text-classification model on the Hugging Face
// inference API. One instance is shared by every request.
type Classifier struct {
	client *api.Client
	model  string
}

var _ interfaces.Classifier = (*Classifier)(nil)

func New(cfg *store.Config) (*Classifier, error) {
	if cfg.Secrets.HFToken == "" {
		return nil, errors.New("HF_API_TOKEN missing")
	}
	opts := []api.ClientOption{
		api.WithBaseURL(strings.TrimRight(cfg.Sentiment.BaseURL, "/")),
		api.WithTimeout(time.Duration(cfg.Sentiment.TimeoutSeconds) * time.Second),
		api.WithHeader("Authorization", "Bearer "+cfg.Secrets.HFToken),
		api.WithHeader("Accept", "application/json"),
		api.WithLogging(true),
	}
	return NewWithClient(api.NewClient(opts...), cfg.Sentiment.Model), nil
}

func NewWithClient(client *api.Client, model string) *Classifier {
	return &Classifier{client: client, model: model}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the highest scoring label for text
func (c *Classifier) Classify(ctx context.Context, text string) (types.Classification, error) {
	ctx, span := trace.StartSpan(ctx, "huggingface-inference")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return types.Classification{}, errors.New("empty text")
	}

	resp, err := c.client.POST(ctx, "/"+c.model, inferenceRequest{Inputs: text})
	if err != nil {
		return types.Classification{}, fmt.Errorf("inference request: %w", err)
	}

	candidates, err := decodeScores(resp.Body)
	if err != nil {
		return types.Classification{}, err
	}
	if len(candidates) == 0 {
		return types.Classification{}, errors.New("no labels in response")
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Score > best.Score {
			best = cand
		}
	}

	label, err := normalizeLabel(best.Label)
	if err != nil {
		return types.Classification{}, err
	}
	return types.Classification{Label: label, Score: best.Score}, nil
}

// decodeScores accepts both the nested [[...]] shape returned for a single
// input and the flat [...] shape some pipelines return.
func decodeScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to parse inference response: %w", err)
	}
	return flat, nil
}

func normalizeLabel(raw string) (types.SentimentLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "POSITIVE", "POS", "LABEL_1":
		return types.Positive, nil
	case "NEGATIVE", "NEG", "LABEL_0":
		return types.Negative, nil
	}
	return "", fmt.Errorf("unsupported label %q", raw)
}
