package handler

import (
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/middleware"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("handler: failed to encode response")
	}
}

// currentUser devolve o usuário autenticado; sem claims responde 401
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

func accountParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")
	if accountID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
		return "", false
	}
	return accountID, true
}

func requestMeta(r *http.Request) domain.RequestMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}

	return domain.RequestMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// parseRange lê start/end da query; ausentes devolvem nil
func parseRange(startKey, endKey string, r *http.Request) (*domain.DateRange, error) {
	query := r.URL.Query()

	start, end, err := utils.ParseDateRange(query.Get(startKey), query.Get(endKey))
	if err != nil {
		return nil, errors.Wrapf(err, "intervalo %s/%s inválido", startKey, endKey)
	}
	if start == nil {
		return nil, nil
	}

	return domain.NewDateRange(*start, *end), nil
}

func parseDay(value string) (time.Time, error) {
	day, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "data %q inválida", value)
	}
	if day == nil {
		return time.Time{}, errors.New("data obrigatória")
	}
	return *day, nil
}
