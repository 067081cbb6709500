package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/llm"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```{\"a\":1}```", `{"a":1}`},
		{"padded", "  \n```json\n{}\n```  ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.StripCodeFence(tt.in))
		})
	}
}

func TestDecodeDraft(t *testing.T) {
	content := "```json\n" + `{"tipo":"lodging","confianca":0.9,"hospedagem":{"nome":"Pousada Vila Bela","check_in":"2026-04-02","valor":"890,00","moeda":"BRL"}}` + "\n```"

	d, err := llm.DecodeDraft(content, nil)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, constants.Lodging, d.Type)
	assert.InDelta(t, 0.9, d.Confidence, 1e-9)
	require.NotNil(t, d.Lodging)
	assert.Equal(t, "Pousada Vila Bela", d.Lodging.Name)
	assert.Equal(t, "2026-04-02", d.Lodging.CheckIn)
	require.NotNil(t, d.Lodging.Amount)
	assert.InDelta(t, 890.0, *d.Lodging.Amount, 1e-9)
	assert.Nil(t, d.Flight)
}

func TestDecodeDraft_EmptyObjectIsAbsent(t *testing.T) {
	d, err := llm.DecodeDraft(`{"voo":{}}`, nil)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDecodeDraft_Errors(t *testing.T) {
	_, err := llm.DecodeDraft("   ", nil)
	assert.ErrorIs(t, err, llm.ErrEmptyOutput)

	_, err = llm.DecodeDraft("the flight is LA3421", nil)
	assert.Error(t, err)
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := llm.BuildDraftJSONSchema()

	assert.NoError(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"tipo":"flight","voo":{"numero":"G31234","data":"2026-03-15"}}`)))
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"voo":{"seat":"12A"}}`)))
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"voo":{"data":"15/03/2026"}}`)))
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"tipo":"cruise"}`)))
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"hospedagem":{"moeda":"reais"}}`)))
}

func TestBuildPrompts(t *testing.T) {
	req := llm.ExtractRequest{
		Text:            "Reserva confirmada Pousada Vila Bela",
		FileName:        "reserva.pdf",
		TripDestination: "Paraty",
		MaxTextRunes:    10,
	}

	sys := llm.BuildSystemPrompt(req)
	assert.Contains(t, sys, "Paraty")
	assert.Contains(t, sys, "BRL")
	assert.Contains(t, sys, "'hospedagem'")

	user := llm.BuildUserPrompt(req)
	assert.Contains(t, user, "Filename: reserva.pdf")
	assert.Contains(t, user, "Reserva co\n…(truncated)")
}
