package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

type fakeManager struct {
	managing.Manager
	customers     []*domain.Customer
	err           error
	lastSearch    string
	lastScope     domain.AppointmentScope
	lastStatus    domain.AppointmentStatus
	createdSale   *domain.CreateSaleRequest
	createdClient *domain.CreateCustomerRequest
}

func (f *fakeManager) ListCustomers(_ context.Context, _ domain.Session, search string) ([]*domain.Customer, error) {
	f.lastSearch = search
	return f.customers, f.err
}

func (f *fakeManager) GetCustomer(_ context.Context, _ domain.Session, id string) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Customer{ID: id, Name: "Sarah"}, nil
}

func (f *fakeManager) CreateCustomer(_ context.Context, session domain.Session, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	f.createdClient = req
	return &domain.Customer{ID: "c1", OwnerID: session.OwnerID, Name: req.Name, Email: req.Email, Status: domain.CustomerStatusActive}, f.err
}

func (f *fakeManager) DeleteCustomer(_ context.Context, _ domain.Session, _ string) error {
	return f.err
}

func (f *fakeManager) ListAppointments(_ context.Context, _ domain.Session, scope domain.AppointmentScope) ([]*domain.Appointment, error) {
	f.lastScope = scope
	return []*domain.Appointment{}, f.err
}

func (f *fakeManager) UpdateAppointmentStatus(_ context.Context, _ domain.Session, _ string, status domain.AppointmentStatus) error {
	f.lastStatus = status
	return f.err
}

func (f *fakeManager) CreateSale(_ context.Context, _ domain.Session, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	f.createdSale = req
	return &domain.Sale{ID: "s1", Amount: req.Amount}, f.err
}

func TestCustomerHandlers(t *testing.T) {
	t.Run("Listagem com busca", func(t *testing.T) {
		manager := &fakeManager{customers: []*domain.Customer{{ID: "c1", Name: "Sarah"}}}

		rec := serve(t, Customers(manager, storedProfile{}), http.MethodGet, "/v1/customers?search=sar", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sar", manager.lastSearch)
		assert.Contains(t, rec.Body.String(), "Sarah")
	})

	t.Run("Criação válida", func(t *testing.T) {
		manager := &fakeManager{}

		rec := serve(t, Customers(manager, storedProfile{}), http.MethodPost, "/v1/customers", `{"name":"Sarah","email":"sarah@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, manager.createdClient)
		assert.Equal(t, "sarah@example.com", manager.createdClient.Email)
	})

	t.Run("Criação com email inválido", func(t *testing.T) {
		manager := &fakeManager{}

		rec := serve(t, Customers(manager, storedProfile{}), http.MethodPost, "/v1/customers", `{"name":"Sarah","email":"sarah"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrValidation, body.Code)
		assert.Equal(t, "email inválido", body.Details["email"])
		assert.Nil(t, manager.createdClient)
	})

	t.Run("Campo desconhecido", func(t *testing.T) {
		rec := serve(t, Customers(&fakeManager{}, storedProfile{}), http.MethodPost, "/v1/customers", `{"name":"Sarah","email":"sarah@example.com","vip":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("Cliente inexistente", func(t *testing.T) {
		manager := &fakeManager{err: managing.NewManagingErrorWithID(managing.ErrCustomerNotFound, apiErrors.ErrResourceNotFound, "c9", "Cliente não encontrado")}

		rec := serve(t, Customers(manager, storedProfile{}), http.MethodGet, "/v1/customers/c9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrResourceNotFound, body.Code)
		assert.Equal(t, "c9", body.Details["id"])
	})

	t.Run("Remoção", func(t *testing.T) {
		rec := serve(t, Customers(&fakeManager{}, storedProfile{}), http.MethodDelete, "/v1/customers/c1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAppointmentHandlers(t *testing.T) {
	t.Run("Escopo repassado", func(t *testing.T) {
		manager := &fakeManager{}

		rec := serve(t, Appointments(manager, storedProfile{}), http.MethodGet, "/v1/appointments?scope=upcoming", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.AppointmentScopeUpcoming, manager.lastScope)
	})

	t.Run("Atualização de status", func(t *testing.T) {
		manager := &fakeManager{}

		rec := serve(t, Appointments(manager, storedProfile{}), http.MethodPut, "/v1/appointments/a1/status", `{"status":"completed"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, domain.AppointmentStatusCompleted, manager.lastStatus)
	})

	t.Run("Status fora da lista", func(t *testing.T) {
		rec := serve(t, Appointments(&fakeManager{}, storedProfile{}), http.MethodPut, "/v1/appointments/a1/status", `{"status":"no-show"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCreateSale(t *testing.T) {
	manager := &fakeManager{}

	rec := serve(t, Sales(manager, storedProfile{}), http.MethodPost, "/v1/sales", `{"customer_name":"Sarah","service_name":"Hair","amount":75.5}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, manager.createdSale)
	assert.Equal(t, "75.5", manager.createdSale.Amount.String())
}
