package repository

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name          string
		raw           sql.NullString
		wantValue     decimal.Decimal
		wantMalformed bool
	}{
		{
			name:      "Valor decimal válido",
			raw:       sql.NullString{String: "120.50", Valid: true},
			wantValue: decimal.RequireFromString("120.50"),
		},
		{
			name:      "Zero é válido",
			raw:       sql.NullString{String: "0", Valid: true},
			wantValue: decimal.Zero,
		},
		{
			name:          "Texto não numérico",
			raw:           sql.NullString{String: "abc", Valid: true},
			wantValue:     decimal.Zero,
			wantMalformed: true,
		},
		{
			name:          "Valor nulo",
			raw:           sql.NullString{},
			wantValue:     decimal.Zero,
			wantMalformed: true,
		},
		{
			name:          "Valor negativo",
			raw:           sql.NullString{String: "-10", Valid: true},
			wantValue:     decimal.Zero,
			wantMalformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, malformed := parseNumeric(tt.raw, "sales", "ABC123", "amount")
			assert.True(t, tt.wantValue.Equal(value), "esperado %s, obtido %s", tt.wantValue, value)
			assert.Equal(t, tt.wantMalformed, malformed)
		})
	}
}
