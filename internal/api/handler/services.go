package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func ListServices(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		services, err := service.ListServices(r.Context(), session)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar serviços")
			return
		}

		utils.WriteJSON(w, http.StatusOK, services)
	}
}

func CreateService(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.CreateServiceRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		created, err := service.CreateService(r.Context(), session, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar serviço")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, created)
	}
}

func UpdateService(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.UpdateServiceRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		updated, err := service.UpdateService(r.Context(), session, id, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar serviço")
			return
		}

		utils.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteService(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeleteService(r.Context(), session, id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover serviço")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
