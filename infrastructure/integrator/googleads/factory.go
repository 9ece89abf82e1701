package googleads

import (
	"strconv"
	"strings"

	adsdomain "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

func parseInt64(value string) int64 {
	if value == "" {
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func fromMicros(value float64) float64 {
	return utils.FromMicros(value)
}

// lastSegment extrai o ID de nomes como "customers/1/campaigns/2"
func lastSegment(resourceName string) string {
	if i := strings.LastIndex(resourceName, "/"); i >= 0 {
		return resourceName[i+1:]
	}
	return resourceName
}

func FactoryMetrics(m *adsdomain.Metrics) domain.Metrics {
	if m == nil {
		return domain.Metrics{}
	}

	impressions := parseInt64(m.Impressions)
	clicks := parseInt64(m.Clicks)

	return domain.Metrics{
		Impressions:     impressions,
		Clicks:          clicks,
		Spend:           fromMicros(float64(parseInt64(m.CostMicros))),
		Conversions:     utils.RoundWithTwoDecimalPlace(m.Conversions),
		ConversionValue: utils.RoundWithTwoDecimalPlace(m.ConversionsValue),
		CTR:             domain.CTR(clicks, impressions),
		AverageCPC:      fromMicros(m.AverageCpc),
	}
}

func FactoryCampaign(row adsdomain.Row) domain.Campaign {
	campaign := domain.Campaign{Metrics: FactoryMetrics(row.Metrics)}

	if row.Campaign != nil {
		campaign.ID = row.Campaign.ID
		campaign.Name = row.Campaign.Name
		campaign.Status = domain.CampaignStatus(row.Campaign.Status)
		campaign.ChannelType = row.Campaign.AdvertisingChannelType
	}
	if row.CampaignBudget != nil {
		campaign.Budget = fromMicros(float64(parseInt64(row.CampaignBudget.AmountMicros)))
	}

	return campaign
}

func FactoryAdGroup(row adsdomain.Row) domain.AdGroup {
	adGroup := domain.AdGroup{Metrics: FactoryMetrics(row.Metrics)}

	if row.AdGroup != nil {
		adGroup.ID = row.AdGroup.ID
		adGroup.Name = row.AdGroup.Name
		adGroup.Status = row.AdGroup.Status
		adGroup.Type = row.AdGroup.Type
		adGroup.CampaignID = lastSegment(row.AdGroup.Campaign)
	}

	return adGroup
}

func FactoryKeyword(row adsdomain.Row) domain.Keyword {
	keyword := domain.Keyword{Metrics: FactoryMetrics(row.Metrics)}

	criterion := row.AdGroupCriterion
	if criterion == nil {
		return keyword
	}

	keyword.CriterionID = criterion.CriterionID
	keyword.AdGroupID = lastSegment(criterion.AdGroup)
	keyword.Status = criterion.Status
	if criterion.Keyword != nil {
		keyword.Text = criterion.Keyword.Text
		keyword.MatchType = criterion.Keyword.MatchType
	}
	if criterion.QualityInfo != nil {
		keyword.QualityScore = criterion.QualityInfo.QualityScore
	}

	return keyword
}

func FactoryDailyMetric(row adsdomain.Row) domain.DailyMetric {
	metric := domain.DailyMetric{Metrics: FactoryMetrics(row.Metrics)}
	if row.Segments != nil {
		metric.Date = row.Segments.Date
	}
	return metric
}

func FactoryRecommendation(row adsdomain.Row) domain.Recommendation {
	if row.Recommendation == nil {
		return domain.Recommendation{}
	}

	return domain.Recommendation{
		ResourceName: row.Recommendation.ResourceName,
		Type:         row.Recommendation.Type,
		CampaignID:   lastSegment(row.Recommendation.Campaign),
		Dismissed:    row.Recommendation.Dismissed,
	}
}

func FactoryGeoPerformance(row adsdomain.Row) domain.GeoPerformance {
	geo := domain.GeoPerformance{Metrics: FactoryMetrics(row.Metrics)}
	if row.GeographicView != nil {
		geo.CountryCriterionID = row.GeographicView.CountryCriterionID
		geo.LocationType = row.GeographicView.LocationType
	}
	return geo
}
