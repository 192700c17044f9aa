package domain

type FAQTopic string

const (
	FAQTopicPricing      FAQTopic = "pricing"
	FAQTopicAppointment  FAQTopic = "appointment"
	FAQTopicCancellation FAQTopic = "cancellation"
	FAQTopicHours        FAQTopic = "hours"
	FAQTopicServices     FAQTopic = "services"
	FAQTopicFallback     FAQTopic = "fallback"
)

type FAQRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

type FAQAnswer struct {
	Question string   `json:"question"`
	Topic    FAQTopic `json:"topic"`
	Answer   string   `json:"answer"`
}
