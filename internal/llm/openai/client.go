package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/llm"
)

var _ llm.DraftExtractor = (*Client)(nil)

type chatCompletion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractDraft asks chat/completions for a weak draft of one document.
// A reply with no usable field gives (nil, nil) so callers fall back to text heuristics.
func (c *Client) ExtractDraft(ctx context.Context, text, fileName string) (*entity.WeakDraft, error) {
	start := time.Now()
	req := llm.ExtractRequest{
		Text:            text,
		FileName:        fileName,
		TripDestination: c.cfg.TripDestination,
		DefaultCurrency: c.cfg.DefaultCurrency,
		MaxTextRunes:    c.cfg.MaxTextRunes,
	}

	c.logger.Info("llm.extract.start",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"file_name", fileName,
		"text_len", len(text),
	)

	schema := llm.BuildDraftJSONSchema()
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(req)},
			{"role": "user", "content": llm.BuildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + string(schemaJSON)},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.extract.http_error",
			"status", status, "err", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("openai request: %w", err)
	}

	var cc chatCompletion
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.extract.decode_error", "err", err, "raw_bytes", len(raw))
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.extract.no_choices", "raw_bytes", len(raw))
		return nil, llm.ErrNoChoices
	}

	draft, err := llm.DecodeDraft(cc.Choices[0].Message.Content, c.logger)
	if err != nil {
		c.logger.Error("llm.extract.schema_validation_failed",
			"err", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if draft == nil {
		c.logger.Warn("llm.extract.empty_draft", "file_name", fileName)
		return nil, nil
	}

	c.logger.Info("llm.extract.ok",
		"file_name", fileName,
		"type", draft.Type,
		"scope", draft.Scope,
		"confidence", draft.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return draft, nil
}
