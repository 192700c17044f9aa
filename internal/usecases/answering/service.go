package answering

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const answerPrefix = "I'd be happy to help with that! "

type Answerer interface {
	Answer(ctx context.Context, question string) (*domain.FAQAnswer, error)
}

type topicRule struct {
	topic    domain.FAQTopic
	keywords []string
	template string
}

// topicRules é avaliada em ordem; a primeira regra com alguma palavra-chave contida na pergunta vence
var topicRules = []topicRule{
	{
		topic:    domain.FAQTopicPricing,
		keywords: []string{"price", "cost", "how much"},
		template: "For pricing information, our standard services range from $45-120. Hair cuts start at $45, styling at $65, and color treatments at $85-120. We offer package deals for regular customers with 10% discounts on bundled services.",
	},
	{
		topic:    domain.FAQTopicAppointment,
		keywords: []string{"appointment", "book", "schedule"},
		template: "To book an appointment, customers can call us at (555) 123-4567, book online through our website, or use our mobile app. We recommend booking 2-3 days in advance for popular time slots.",
	},
	{
		topic:    domain.FAQTopicCancellation,
		keywords: []string{"cancel", "reschedule"},
		template: "Our cancellation policy allows free cancellations up to 24 hours before the appointment. Cancellations within 24 hours may incur a 50% service fee. No-shows will be charged the full service amount.",
	},
	{
		topic:    domain.FAQTopicHours,
		keywords: []string{"hours", "open", "time"},
		template: "We're open Monday-Friday 9 AM to 7 PM, Saturday 9 AM to 6 PM, and closed Sundays. Holiday hours may vary - please check our website or call for specific holiday schedules.",
	},
	{
		topic:    domain.FAQTopicServices,
		keywords: []string{"service", "what do you offer"},
		template: "We offer a full range of hair services including cuts, styling, coloring, highlights, perms, and treatments. We also provide manicures, pedicures, facials, and massage therapy. All services are performed by licensed professionals.",
	},
}

const fallbackTemplate = "For specific questions about our services, pricing, or policies, please call us at (555) 123-4567 or visit our website. Our staff will be happy to provide detailed information about your specific needs."

type Service struct {
	delay time.Duration
}

// NewService cria o respondedor; delay é apenas cosmético e pode ser zero
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Classify devolve o tópico e o template da pergunta, sem prefixo
func Classify(question string) (domain.FAQTopic, string) {
	normalized := strings.ToLower(question)

	for _, rule := range topicRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.topic, rule.template
			}
		}
	}

	return domain.FAQTopicFallback, fallbackTemplate
}

func (s *Service) Answer(ctx context.Context, question string) (*domain.FAQAnswer, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	topic, template := Classify(question)

	return &domain.FAQAnswer{
		Question: question,
		Topic:    topic,
		Answer:   answerPrefix + template,
	}, nil
}
