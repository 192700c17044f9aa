package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

// ListAppointments aceita scope=today|upcoming; sem scope lista todos
func ListAppointments(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		scope := domain.AppointmentScope(r.URL.Query().Get("scope"))
		appointments, err := service.ListAppointments(r.Context(), session, scope)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar agendamentos")
			return
		}

		utils.WriteJSON(w, http.StatusOK, appointments)
	}
}

func CreateAppointment(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.CreateAppointmentRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		appointment, err := service.CreateAppointment(r.Context(), session, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar agendamento")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, appointment)
	}
}

func UpdateAppointmentStatus(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.UpdateAppointmentStatusRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.UpdateAppointmentStatus(r.Context(), session, id, req.Status); err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar status do agendamento")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteAppointment(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeleteAppointment(r.Context(), session, id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover agendamento")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
