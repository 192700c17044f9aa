package handler

import (
	"net/http"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"github.com/vfg2006/business-dashboard-api/pkg/middleware"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		token, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if authenticating.IsCredentialsError(err) {
				log.ForContext(r.Context()).WithField("email", req.Email).Warn("Tentativa de login recusada")
			}
			writeServiceError(w, r, err, "Erro interno ao realizar login")
			return
		}

		utils.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}

func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterOwnerRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		owner, err := service.Register(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cadastrar dono")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, owner)
	}
}

// GetMe retorna o perfil do dono autenticado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		owner, err := service.GetProfile(r.Context(), claims.OwnerID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao obter dados do dono")
			return
		}

		utils.WriteJSON(w, http.StatusOK, owner)
	}
}

// UpdateMe altera nome, email, nome do negócio e fuso do dono autenticado
func UpdateMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateOwnerRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		// o próprio dono não altera o status da conta
		req.ID = claims.OwnerID
		req.Active = nil

		owner, err := service.UpdateProfile(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar dono")
			return
		}

		utils.WriteJSON(w, http.StatusOK, owner)
	}
}

func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		var req ChangePasswordRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := service.ChangePassword(r.Context(), claims.OwnerID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListOwners lista todos os donos; restrito a administradores pela rota
func ListOwners(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owners, err := service.ListOwners(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar donos")
			return
		}

		utils.WriteJSON(w, http.StatusOK, owners)
	}
}
