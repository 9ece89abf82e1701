package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

func ListConnections(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		connections, err := service.ListConnections(r.Context(), claims.UserID)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, connections)
	}
}

// DeleteConnection desconecta a conta; com ?remove=true apaga a conexão de vez
func DeleteConnection(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		remove := false
		if raw := r.URL.Query().Get("remove"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro remove inválido", nil)
				return
			}
			remove = parsed
		}

		var err error
		if remove {
			err = service.RemoveAccount(r.Context(), claims.UserID, accountID, requestMeta(r))
		} else {
			err = service.Disconnect(r.Context(), claims.UserID, accountID, requestMeta(r))
		}
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// EraseMe apaga conexões, cache, snapshots órfãos e auditoria do usuário atual
func EraseMe(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := service.EraseUser(r.Context(), claims.UserID, requestMeta(r)); err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		logrus.WithField("user_id", claims.UserID).Info("handler: user data erased")
		w.WriteHeader(http.StatusNoContent)
	}
}
