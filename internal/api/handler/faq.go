package handler

import (
	"net/http"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/answering"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func AnswerQuestion(service answering.Answerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.FAQRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		answer, err := service.Answer(r.Context(), req.Question)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao responder pergunta")
			return
		}

		utils.WriteJSON(w, http.StatusOK, answer)
	}
}
