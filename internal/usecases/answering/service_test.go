package answering

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected domain.FAQTopic
	}{
		{name: "Preço por how much", question: "How much does a haircut cost?", expected: domain.FAQTopicPricing},
		{name: "Preço por price", question: "What is the PRICE of a facial", expected: domain.FAQTopicPricing},
		{name: "Agendamento", question: "Can I book for Friday?", expected: domain.FAQTopicAppointment},
		{name: "Preço vence agendamento", question: "How much to book a massage?", expected: domain.FAQTopicPricing},
		{name: "Agendamento vence cancelamento", question: "I need to cancel my appointment", expected: domain.FAQTopicAppointment},
		{name: "Cancelamento", question: "Can I cancel tomorrow?", expected: domain.FAQTopicCancellation},
		{name: "Reschedule contém schedule", question: "Can I reschedule?", expected: domain.FAQTopicAppointment},
		{name: "Horário", question: "When are you open on Saturday?", expected: domain.FAQTopicHours},
		{name: "Serviços", question: "What do you offer?", expected: domain.FAQTopicServices},
		{name: "Serviço no singular", question: "Is there a service for nails", expected: domain.FAQTopicServices},
		{name: "Sem palavra-chave", question: "Do you have parking?", expected: domain.FAQTopicFallback},
		{name: "Pergunta vazia", question: "", expected: domain.FAQTopicFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, _ := Classify(tt.question)
			assert.Equal(t, tt.expected, topic)
		})
	}
}

func TestService_Answer(t *testing.T) {
	service := NewService(0)

	t.Run("Pergunta de preço", func(t *testing.T) {
		answer, err := service.Answer(context.Background(), "How much does a haircut cost?")
		require.NoError(t, err)

		assert.Equal(t, domain.FAQTopicPricing, answer.Topic)
		assert.True(t, strings.HasPrefix(answer.Answer, "I'd be happy to help with that! For pricing information"))
	})

	t.Run("Fallback literal", func(t *testing.T) {
		answer, err := service.Answer(context.Background(), "Do you have parking?")
		require.NoError(t, err)

		assert.Equal(t, "I'd be happy to help with that! "+fallbackTemplate, answer.Answer)
	})
}

func TestService_Answer_AtrasoCancelavel(t *testing.T) {
	service := NewService(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	answer, err := service.Answer(ctx, "How much?")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, answer)
}
