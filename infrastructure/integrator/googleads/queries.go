package googleads

import (
	"fmt"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
)

// As queries são strings opacas para o restante do sistema; só este pacote as monta.

const metricFields = "metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, metrics.conversions_value, metrics.ctr, metrics.average_cpc"

const (
	campaignsQuery = "SELECT campaign.id, campaign.name, campaign.status, campaign.advertising_channel_type, campaign_budget.amount_micros, " +
		metricFields + " FROM campaign WHERE campaign.status != 'REMOVED'"

	adGroupsQuery = "SELECT ad_group.id, ad_group.name, ad_group.status, ad_group.type, ad_group.campaign, " +
		metricFields + " FROM ad_group WHERE ad_group.status != 'REMOVED'"

	keywordsQuery = "SELECT ad_group_criterion.criterion_id, ad_group_criterion.ad_group, ad_group_criterion.status, " +
		"ad_group_criterion.keyword.text, ad_group_criterion.keyword.match_type, ad_group_criterion.quality_info.quality_score, " +
		metricFields + " FROM keyword_view WHERE ad_group_criterion.status != 'REMOVED'"

	dailyMetricsQuery = "SELECT segments.date, " + metricFields + " FROM customer WHERE segments.date IS NOT NULL"

	recommendationsQuery = "SELECT recommendation.resource_name, recommendation.type, recommendation.campaign, recommendation.dismissed " +
		"FROM recommendation WHERE recommendation.dismissed = FALSE"

	geoPerformanceQuery = "SELECT geographic_view.country_criterion_id, geographic_view.location_type, " +
		metricFields + " FROM geographic_view"

	defaultDuring = "LAST_30_DAYS"
)

// withDateRange restringe a query ao período; sem período usa os últimos 30 dias
func withDateRange(query string, dr *domain.DateRange) string {
	if dr == nil {
		return fmt.Sprintf("%s AND segments.date DURING %s", query, defaultDuring)
	}

	return fmt.Sprintf("%s AND segments.date BETWEEN '%s' AND '%s'",
		query, dr.Start.Format(time.DateOnly), dr.End.Format(time.DateOnly))
}

// geo não tem WHERE próprio
func geoQuery(dr *domain.DateRange) string {
	if dr == nil {
		return fmt.Sprintf("%s WHERE segments.date DURING %s", geoPerformanceQuery, defaultDuring)
	}

	return fmt.Sprintf("%s WHERE segments.date BETWEEN '%s' AND '%s'",
		geoPerformanceQuery, dr.Start.Format(time.DateOnly), dr.End.Format(time.DateOnly))
}
