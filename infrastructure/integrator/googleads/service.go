package googleads

//go:generate mockgen -source=service.go -destination=mocks/integrator_mock.go -package=mocks

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/adsync-api/internal/domain"
)

// Integrator expõe a API de anúncios já convertida para o domínio.
// Todas as chamadas recebem token e conta explicitamente.
type Integrator interface {
	ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error)
	GetCampaigns(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.Campaign, error)
	GetAdGroups(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.AdGroup, error)
	GetKeywords(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.Keyword, error)
	GetDailyMetrics(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.DailyMetric, error)
	GetRecommendations(ctx context.Context, accessToken, customerID string) ([]domain.Recommendation, error)
	GetGeoPerformance(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.GeoPerformance, error)
}

type GoogleAdsIntegrator struct {
	Client adsclient.Client
}

func New(client adsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		Client: client,
	}
}

func (s *GoogleAdsIntegrator) ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error) {
	return s.Client.ListAccessibleCustomers(ctx, accessToken)
}

func search[T any](ctx context.Context, client adsclient.Client, accessToken, customerID, resource, query string, factory func(adsdomain.Row) T) ([]T, error) {
	rows, err := client.Search(ctx, accessToken, customerID, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"resource":    resource,
			"error":       err.Error(),
		}).Error("googleads: failed to fetch resource")
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, factory(row))
	}

	return items, nil
}

func (s *GoogleAdsIntegrator) GetCampaigns(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.Campaign, error) {
	return search(ctx, s.Client, accessToken, customerID, "campaigns", withDateRange(campaignsQuery, dr), FactoryCampaign)
}

func (s *GoogleAdsIntegrator) GetAdGroups(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.AdGroup, error) {
	return search(ctx, s.Client, accessToken, customerID, "ad_groups", withDateRange(adGroupsQuery, dr), FactoryAdGroup)
}

func (s *GoogleAdsIntegrator) GetKeywords(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.Keyword, error) {
	return search(ctx, s.Client, accessToken, customerID, "keywords", withDateRange(keywordsQuery, dr), FactoryKeyword)
}

func (s *GoogleAdsIntegrator) GetDailyMetrics(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.DailyMetric, error) {
	return search(ctx, s.Client, accessToken, customerID, "daily_metrics", withDateRange(dailyMetricsQuery, dr), FactoryDailyMetric)
}

func (s *GoogleAdsIntegrator) GetRecommendations(ctx context.Context, accessToken, customerID string) ([]domain.Recommendation, error) {
	return search(ctx, s.Client, accessToken, customerID, "recommendations", recommendationsQuery, FactoryRecommendation)
}

func (s *GoogleAdsIntegrator) GetGeoPerformance(ctx context.Context, accessToken, customerID string, dr *domain.DateRange) ([]domain.GeoPerformance, error) {
	return search(ctx, s.Client, accessToken, customerID, "geo_performance", geoQuery(dr), FactoryGeoPerformance)
}
