package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

type RecordSnapshotRequest struct {
	Date string `json:"date"`
}

// RecordSnapshot grava o snapshot do dia informado; sem data usa o dia anterior
func RecordSnapshot(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		var req RecordSnapshotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		date := domain.TruncateDay(time.Now().UTC()).AddDate(0, 0, -1)
		if req.Date != "" {
			parsed, err := parseDay(req.Date)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			date = parsed
		}

		snapshot, err := service.RecordSnapshot(r.Context(), claims.UserID, accountID, date, requestMeta(r))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	}
}

func QuerySnapshots(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		dateRange, err := parseRange("start", "end", r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		snapshots, err := service.QuerySnapshots(r.Context(), claims.UserID, accountID, dateRange)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshots)
	}
}

func LatestSnapshot(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		snapshot, err := service.LatestSnapshot(r.Context(), claims.UserID, accountID)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

// CompareSnapshots compara ?current= com ?previous=
func CompareSnapshots(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		current, err := parseDay(query.Get("current"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		previous, err := parseDay(query.Get("previous"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		comparison, err := service.CompareSnapshots(r.Context(), claims.UserID, accountID, current, previous)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, comparison)
	}
}

// Trend compara p1_start/p1_end com p2_start/p2_end, este último como base
func Trend(service integration.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID, ok := accountParam(w, r)
		if !ok {
			return
		}

		period1, err := parseRange("p1_start", "p1_end", r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		period2, err := parseRange("p2_start", "p2_end", r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if period1 == nil || period2 == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Os dois períodos são obrigatórios", nil)
			return
		}

		report, err := service.Trend(r.Context(), claims.UserID, accountID, *period1, *period2)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
