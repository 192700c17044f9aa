package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

// RateLimit limita requisições por IP dentro de uma janela de um minuto; limit <= 0 desliga o limite
func RateLimit(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		limit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logrus.WithFields(logrus.Fields{
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			}).Warn("Limite de requisições excedido")
			apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Muitas requisições, tente novamente em instantes", nil)
		}),
	)
}
