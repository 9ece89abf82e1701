package integration

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/caching"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// FetchWithCache verifica a posse da conta, serve do cache quando possível e,
// no miss, renova o token se preciso, consulta a plataforma e grava o resultado.
// O bool indica se a resposta veio do cache.
func FetchWithCache[T any](ctx context.Context, s *Service, userID int, externalAccountID string, resource domain.ResourceType, dr *domain.DateRange, fetch func(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) (T, error)) (T, bool, error) {
	var zero T

	conn, err := s.guard.Require(ctx, userID, externalAccountID)
	if err != nil {
		return zero, false, err
	}

	if conn.Status == domain.ConnectionStatusDisconnected {
		return zero, false, NewIntegrationError(ErrConnectionDisconnected, apiErrors.ErrAccessDenied, externalAccountID, "")
	}

	key := domain.CacheKey{
		Resource:          resource,
		ExternalAccountID: externalAccountID,
		Range:             dr,
	}

	return caching.Fetch(ctx, s.cache, key, func(ctx context.Context) (T, error) {
		accessToken, err := s.EnsureFreshToken(ctx, conn)
		if err != nil {
			return zero, err
		}

		value, err := fetch(ctx, accessToken, externalAccountID, dr)
		s.recordSync(ctx, conn, err)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": externalAccountID,
				"resource":   resource,
				"error":      err.Error(),
			}).Error("integration: remote fetch failed")
			return zero, remoteError(err, externalAccountID)
		}

		return value, nil
	})
}

// recordSync grava o resultado da última sincronização; falhas aqui só são logadas
func (s *Service) recordSync(ctx context.Context, conn *domain.Connection, fetchErr error) {
	var syncErr *string
	if fetchErr != nil {
		syncErr = stringPtr(fetchErr.Error())
	}

	if err := s.connRepo.UpdateSyncResult(ctx, conn.ID, s.now(), syncErr); err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": conn.ID,
			"error":         err.Error(),
		}).Warn("integration: failed to record sync result")
	}
}

func (s *Service) Campaigns(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.Campaign, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceCampaigns, dr, s.ads.GetCampaigns)
}

func (s *Service) AdGroups(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.AdGroup, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceAdGroups, dr, s.ads.GetAdGroups)
}

func (s *Service) Keywords(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.Keyword, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceKeywords, dr, s.ads.GetKeywords)
}

func (s *Service) DailyMetrics(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.DailyMetric, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceDailyMetrics, dr, s.ads.GetDailyMetrics)
}

// Recommendations não dependem de período
func (s *Service) Recommendations(ctx context.Context, userID int, externalAccountID string) ([]domain.Recommendation, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceRecommendations, nil,
		func(ctx context.Context, accessToken, customerID string, _ *domain.DateRange) ([]domain.Recommendation, error) {
			return s.ads.GetRecommendations(ctx, accessToken, customerID)
		})
}

func (s *Service) GeoPerformance(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.GeoPerformance, bool, error) {
	return FetchWithCache(ctx, s, userID, externalAccountID, domain.ResourceGeoPerformance, dr, s.ads.GetGeoPerformance)
}

// Resource despacha pelo tipo de recurso, usado pela rota genérica de dados
func (s *Service) Resource(ctx context.Context, userID int, externalAccountID string, resource domain.ResourceType, dr *domain.DateRange) (interface{}, bool, error) {
	switch resource {
	case domain.ResourceCampaigns:
		return s.Campaigns(ctx, userID, externalAccountID, dr)
	case domain.ResourceAdGroups:
		return s.AdGroups(ctx, userID, externalAccountID, dr)
	case domain.ResourceKeywords:
		return s.Keywords(ctx, userID, externalAccountID, dr)
	case domain.ResourceDailyMetrics:
		return s.DailyMetrics(ctx, userID, externalAccountID, dr)
	case domain.ResourceRecommendations:
		return s.Recommendations(ctx, userID, externalAccountID)
	case domain.ResourceGeoPerformance:
		return s.GeoPerformance(ctx, userID, externalAccountID, dr)
	default:
		return nil, false, NewIntegrationError(ErrUnknownResource, apiErrors.ErrInvalidRequest, externalAccountID, string(resource))
	}
}
