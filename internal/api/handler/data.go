package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

type ResourceResponse struct {
	Resource domain.ResourceType `json:"resource"`
	Cached   bool                `json:"cached"`
	Data     interface{}         `json:"data"`
}

// GetResource serve uma classe de dados da conta, do cache quando houver entrada válida
func GetResource(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		resource := domain.ResourceType(httprouter.ParamsFromContext(r.Context()).ByName("resource"))

		dateRange, err := parseRange("start", "end", r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		data, cached, err := service.Resource(r.Context(), claims.UserID, accountID, resource, dateRange)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ResourceResponse{
			Resource: resource,
			Cached:   cached,
			Data:     data,
		})
	}
}

// RefreshAccount invalida todas as classes em cache da conta
func RefreshAccount(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		report, err := service.RefreshAccount(r.Context(), claims.UserID, accountID, requestMeta(r))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
