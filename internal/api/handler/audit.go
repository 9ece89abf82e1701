package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// ListAudit lista a trilha do usuário atual. Filtros: account_id, action, failures, limit, offset.
func ListAudit(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		filter := domain.AuditFilter{}

		if accountID := query.Get("account_id"); accountID != "" {
			filter.ExternalAccountID = &accountID
		}
		if action := query.Get("action"); action != "" {
			auditAction := domain.AuditAction(action)
			filter.Action = &auditAction
		}
		if query.Get("failures") == "true" {
			filter.OnlyFailures = true
		}

		for key, target := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
			raw := query.Get(key)
			if raw == "" {
				continue
			}
			value, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+key+" inválido", nil)
				return
			}
			*target = value
		}

		entries, err := service.ListAudit(r.Context(), claims.UserID, filter)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
