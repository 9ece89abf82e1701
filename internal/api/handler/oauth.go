package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

type AuthorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// Authorize devolve a URL de consentimento com o state assinado para o usuário atual
func Authorize(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		url, err := service.SubmitAuthorization(claims.UserID)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthorizeResponse{AuthorizationURL: url})
	}
}

// OAuthCallback troca o código e conecta as contas. Não exige bearer: o dono vem do state.
func OAuthCallback(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if providerErr := query.Get("error"); providerErr != "" {
			logrus.WithField("error", providerErr).Warn("handler: provider denied consent")
			apiErrors.WriteError(w, apiErrors.ErrProviderDenied, "Consentimento negado pelo provedor", providerErr)
			return
		}

		code, state := query.Get("code"), query.Get("state")
		if code == "" || state == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros code e state são obrigatórios", nil)
			return
		}

		result, err := service.CompleteAuthorization(r.Context(), code, state, requestMeta(r))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		// os tokens não saem na resposta
		writeJSON(w, http.StatusOK, result.Batch)
	}
}
