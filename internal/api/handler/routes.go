package handler

import (
	"net/http"

	"github.com/vfg2006/business-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/answering"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Authentication expõe as rotas do dono; login e cadastro dividem o mesmo limite por IP
func Authentication(service authenticating.Authenticator, loginRateLimit int) []router.Route {
	loginLimit := middleware.RateLimit(loginRateLimit)

	return []router.Route{
		{
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: middlewares{loginLimit},
		},
		{
			Path:        "/v1/register",
			Method:      http.MethodPost,
			Handler:     Register(service),
			Middlewares: middlewares{loginLimit},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodPut,
			Handler:     UpdateMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/owners",
			Method:      http.MethodGet,
			Handler:     ListOwners(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Customers(service managing.Manager, sessions authenticating.SessionResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers",
			Method:      http.MethodGet,
			Handler:     ListCustomers(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers",
			Method:      http.MethodPost,
			Handler:     CreateCustomer(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodGet,
			Handler:     GetCustomer(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCustomer(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCustomer(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Services(service managing.Manager, sessions authenticating.SessionResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/services",
			Method:      http.MethodGet,
			Handler:     ListServices(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/services",
			Method:      http.MethodPost,
			Handler:     CreateService(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/services/:id",
			Method:      http.MethodPut,
			Handler:     UpdateService(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/services/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteService(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Appointments(service managing.Manager, sessions authenticating.SessionResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/appointments",
			Method:      http.MethodGet,
			Handler:     ListAppointments(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/appointments",
			Method:      http.MethodPost,
			Handler:     CreateAppointment(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/appointments/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateAppointmentStatus(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/appointments/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAppointment(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Sales(service managing.Manager, sessions authenticating.SessionResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Dashboard(service insighting.Insighter, sessions authenticating.SessionResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/summary",
			Method:      http.MethodGet,
			Handler:     GetDashboardSummary(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/revenue",
			Method:      http.MethodGet,
			Handler:     GetRevenue(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/services",
			Method:      http.MethodGet,
			Handler:     GetServiceRevenue(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/insights",
			Method:      http.MethodGet,
			Handler:     GetInsights(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/history",
			Method:      http.MethodGet,
			Handler:     GetDashboardHistory(service, sessions),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func FAQ(service answering.Answerer, faqRateLimit int) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/faq",
			Method:      http.MethodPost,
			Handler:     AnswerQuestion(service),
			Middlewares: middlewares{middleware.AllRoles(), middleware.RateLimit(faqRateLimit)},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
