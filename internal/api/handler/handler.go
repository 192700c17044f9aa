package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"github.com/vfg2006/business-dashboard-api/pkg/middleware"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
	"github.com/vfg2006/business-dashboard-api/pkg/validation"
)

// decodeAndValidate lê o corpo em dest e aplica as regras de validação; escreve o erro e devolve false em caso de falha
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := utils.DecodeJSON(r, dest); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}

	if fieldErrors := validation.Struct(dest); fieldErrors != nil {
		apiErrors.WriteError(w, apiErrors.ErrValidation, "Dados da requisição inválidos", fieldErrors)
		return false
	}

	return true
}

// sessionFromRequest monta a sessão a partir das claims, do perfil gravado do dono e do parâmetro tz
func sessionFromRequest(w http.ResponseWriter, r *http.Request, sessions authenticating.SessionResolver) (domain.Session, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return domain.Session{}, false
	}

	session, err := sessions.ResolveSession(r.Context(), claims, r.URL.Query().Get("tz"))
	if err != nil {
		writeServiceError(w, r, err, "Erro ao carregar sessão")
		return domain.Session{}, false
	}

	return session, true
}

// writeServiceError traduz os erros tipados dos serviços para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	var managingErr *managing.ManagingError
	if errors.As(err, &managingErr) {
		details := map[string]any(nil)
		if managingErr.RecordID != "" {
			details = map[string]any{"id": managingErr.RecordID}
		}
		apiErrors.WriteError(w, managingErr.Code, managingErr.Error(), details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithFields(log.Fields{
		"error": err.Error(),
		"path":  r.URL.Path,
	}).Error(fallbackMsg)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMsg, nil)
}
