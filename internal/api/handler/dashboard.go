package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

// dashboardView recorta a parte do painel devolvida por cada rota
type dashboardView func(dashboard *domain.Dashboard) any

type RevenueResponse struct {
	Period  domain.Granularity     `json:"period"`
	Buckets []domain.RevenueBucket `json:"buckets"`
	Stale   bool                   `json:"stale"`
}

type DashboardSummaryResponse struct {
	BusinessName string         `json:"business_name"`
	Summary      domain.Summary `json:"summary"`
	Stale        bool           `json:"stale"`
}

func fullDashboard(dashboard *domain.Dashboard) any {
	return dashboard
}

func summaryView(dashboard *domain.Dashboard) any {
	return DashboardSummaryResponse{
		BusinessName: dashboard.BusinessName,
		Summary:      dashboard.Summary,
		Stale:        dashboard.Stale,
	}
}

func servicesView(dashboard *domain.Dashboard) any {
	return dashboard.Services
}

func insightsView(dashboard *domain.Dashboard) any {
	return dashboard.Insights
}

func revenueView(period domain.Granularity) dashboardView {
	return func(dashboard *domain.Dashboard) any {
		return RevenueResponse{
			Period:  period,
			Buckets: dashboard.RevenueSeries(period),
			Stale:   dashboard.Stale,
		}
	}
}

// serveDashboard calcula o painel no fuso de quem visualiza. Com as coleções indisponíveis
// responde SRV_005 levando o último painel válido em details, ou details vazio quando não há nenhum.
func serveDashboard(w http.ResponseWriter, r *http.Request, service insighting.Insighter, sessions authenticating.SessionResolver, view dashboardView) {
	session, ok := sessionFromRequest(w, r, sessions)
	if !ok {
		return
	}

	dashboard, err := service.GetDashboard(r.Context(), session, session.Now())
	if err != nil {
		if errors.Is(err, insighting.ErrSnapshotUnavailable) {
			log.ForContext(r.Context()).WithError(err).Warn("Painel indisponível")

			var details any
			if dashboard != nil {
				details = view(dashboard)
			}
			apiErrors.WriteError(w, apiErrors.ErrSnapshotUnavailable, "Dados do painel indisponíveis no momento", details)
			return
		}

		writeServiceError(w, r, err, "Erro ao montar o painel")
		return
	}

	utils.WriteJSON(w, http.StatusOK, view(dashboard))
}

func GetDashboard(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveDashboard(w, r, service, sessions, fullDashboard)
	}
}

func GetDashboardSummary(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveDashboard(w, r, service, sessions, summaryView)
	}
}

// GetRevenue devolve a série de receita; period padrão é monthly
func GetRevenue(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := domain.Granularity(r.URL.Query().Get("period"))
		if period == "" {
			period = domain.GranularityMonthly
		}

		if !period.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period deve ser daily, weekly ou monthly", nil)
			return
		}

		serveDashboard(w, r, service, sessions, revenueView(period))
	}
}

func GetServiceRevenue(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveDashboard(w, r, service, sessions, servicesView)
	}
}

func GetInsights(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveDashboard(w, r, service, sessions, insightsView)
	}
}

// GetDashboardHistory lista os snapshots diários gravados; sem filtros cobre os últimos 30 dias
func GetDashboardHistory(service insighting.Insighter, sessions authenticating.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromRequest(w, r, sessions)
		if !ok {
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		entries, err := service.GetHistory(r.Context(), session, &domain.HistoryFilters{
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			if errors.Is(err, insighting.ErrInvalidDateRange) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			writeServiceError(w, r, err, "Erro ao buscar histórico do painel")
			return
		}

		utils.WriteJSON(w, http.StatusOK, entries)
	}
}
