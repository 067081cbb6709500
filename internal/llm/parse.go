package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// StripCodeFence removes a surrounding markdown fence (```json ... ```) if present.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeDraft turns model output into a weak draft: fence stripping, lenient
// normalization, then strict schema validation. An output with no usable
// field gives a nil draft and a nil error.
func DecodeDraft(content string, logger *slog.Logger) (*entity.WeakDraft, error) {
	body := StripCodeFence(content)
	if body == "" {
		return nil, ErrEmptyOutput
	}
	clean, _, err := NormalizeDraftJSON([]byte(body), logger)
	if err != nil {
		return nil, err
	}
	if err := ValidateJSONAgainstSchema(BuildDraftJSONSchema(), clean); err != nil {
		return nil, err
	}
	var d entity.WeakDraft
	if err := json.Unmarshal(clean, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if d.Empty() && d.Type == "" {
		return nil, nil
	}
	return &d, nil
}
