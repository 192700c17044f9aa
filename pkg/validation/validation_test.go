package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  map[string]string
	}{
		{
			name:  "Cliente válido",
			input: &domain.CreateCustomerRequest{Name: "Sarah", Email: "sarah@example.com"},
		},
		{
			name:  "Campos obrigatórios ausentes usam o nome JSON",
			input: &domain.CreateCustomerRequest{},
			want: map[string]string{
				"name":  "campo obrigatório",
				"email": "campo obrigatório",
			},
		},
		{
			name: "Data e horário fora do formato",
			input: &domain.CreateAppointmentRequest{
				CustomerName: "Sarah",
				ServiceName:  "Hair",
				Date:         "15/03/2024",
				Time:         "2pm",
				Duration:     60,
			},
			want: map[string]string{
				"date": "deve seguir o formato 2006-01-02",
				"time": "deve seguir o formato 15:04",
			},
		},
		{
			name:  "Status fora da lista",
			input: &domain.UpdateAppointmentStatusRequest{Status: "no-show"},
			want: map[string]string{
				"status": "deve ser um de: pending confirmed completed cancelled",
			},
		},
		{
			name:  "Pergunta longa demais",
			input: &domain.FAQRequest{Question: strings.Repeat("a", 501)},
			want: map[string]string{
				"question": "deve ter no máximo 500 caracteres",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Struct(tt.input))
		})
	}
}
