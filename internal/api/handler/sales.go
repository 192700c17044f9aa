package handler

import (
	"net/http"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func ListSales(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		sales, err := service.ListSales(r.Context(), session)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar vendas")
			return
		}

		utils.WriteJSON(w, http.StatusOK, sales)
	}
}

func CreateSale(service managing.Manager, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		var req domain.CreateSaleRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		sale, err := service.CreateSale(r.Context(), session, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar venda")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, sale)
	}
}
