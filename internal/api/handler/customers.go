package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func ListCustomers(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		customers, err := service.ListCustomers(r.Context(), session, r.URL.Query().Get("search"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar clientes")
			return
		}

		utils.WriteJSON(w, http.StatusOK, customers)
	}
}

func GetCustomer(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		customer, err := service.GetCustomer(r.Context(), session, id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar cliente")
			return
		}

		utils.WriteJSON(w, http.StatusOK, customer)
	}
}

func CreateCustomer(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.CreateCustomerRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		customer, err := service.CreateCustomer(r.Context(), session, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar cliente")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, customer)
	}
}

func UpdateCustomer(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.UpdateCustomerRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		customer, err := service.UpdateCustomer(r.Context(), session, id, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar cliente")
			return
		}

		utils.WriteJSON(w, http.StatusOK, customer)
	}
}

func DeleteCustomer(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeleteCustomer(r.Context(), session, id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover cliente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
