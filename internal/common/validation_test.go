package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	amount := 10.5
	negative := -1.0
	nan := math.NaN()

	tests := []struct {
		name    string
		field   string
		value   interface{}
		rule    ValidationRule
		wantErr bool
	}{
		{name: "required ok", field: "type", value: "flight", rule: Required},
		{name: "required blank", field: "type", value: "  ", rule: Required, wantErr: true},
		{name: "required nil amount", field: "amount", value: (*float64)(nil), rule: Required, wantErr: true},
		{name: "currency ok", field: "currency", value: "BRL", rule: CurrencyCode},
		{name: "currency empty allowed", field: "currency", value: "", rule: CurrencyCode},
		{name: "currency lower", field: "currency", value: "brl", rule: CurrencyCode, wantErr: true},
		{name: "currency too long", field: "currency", value: "BRLX", rule: CurrencyCode, wantErr: true},
		{name: "iso date ok", field: "start_date", value: "2026-04-02", rule: ISODate},
		{name: "iso date empty allowed", field: "start_date", value: "", rule: ISODate},
		{name: "iso date impossible", field: "start_date", value: "2026-02-31", rule: ISODate, wantErr: true},
		{name: "iso date brazilian rejected", field: "start_date", value: "02/04/2026", rule: ISODate, wantErr: true},
		{name: "amount ok", field: "total", value: &amount, rule: NonNegativeAmount},
		{name: "amount nil allowed", field: "total", value: (*float64)(nil), rule: NonNegativeAmount},
		{name: "amount negative", field: "total", value: &negative, rule: NonNegativeAmount, wantErr: true},
		{name: "amount nan", field: "total", value: &nan, rule: NonNegativeAmount, wantErr: true},
		{name: "max length", field: "name", value: "abcdef", rule: MaxLength(3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().Field(tt.field, tt.value, tt.rule)
			assert.Equal(t, tt.wantErr, v.HasErrors())
			if tt.wantErr {
				assert.Contains(t, v.ErrorMessage(), tt.field)
			}
		})
	}
}

func TestValidateAndReturnError(t *testing.T) {
	require.NoError(t, ValidateAndReturnError(NewValidator()))

	v := NewValidator().
		Field("currency", "usd", CurrencyCode).
		Field("start_date", "tomorrow", ISODate)
	err := ValidateAndReturnError(v)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, v.Errors(), 2)
}
