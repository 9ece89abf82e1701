package domain

type CampaignStatus string

const (
	CampaignStatusEnabled CampaignStatus = "ENABLED"
	CampaignStatusPaused  CampaignStatus = "PAUSED"
	CampaignStatusRemoved CampaignStatus = "REMOVED"
)

// Metrics são os valores já convertidos da plataforma (custo em moeda, não micros)
type Metrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Spend           float64 `json:"spend"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	CTR             float64 `json:"ctr"`
	AverageCPC      float64 `json:"average_cpc"`
}

type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Status      CampaignStatus `json:"status"`
	ChannelType string         `json:"channel_type"`
	Budget      float64        `json:"budget"`
	Metrics     Metrics        `json:"metrics"`
}

type AdGroup struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CampaignID string  `json:"campaign_id"`
	Status     string  `json:"status"`
	Type       string  `json:"type"`
	Metrics    Metrics `json:"metrics"`
}

type Keyword struct {
	CriterionID  string  `json:"criterion_id"`
	AdGroupID    string  `json:"ad_group_id"`
	Text         string  `json:"text"`
	MatchType    string  `json:"match_type"`
	Status       string  `json:"status"`
	QualityScore *int    `json:"quality_score,omitempty"`
	Metrics      Metrics `json:"metrics"`
}

type DailyMetric struct {
	Date    string  `json:"date"`
	Metrics Metrics `json:"metrics"`
}

type Recommendation struct {
	ResourceName string `json:"resource_name"`
	Type         string `json:"type"`
	CampaignID   string `json:"campaign_id,omitempty"`
	Dismissed    bool   `json:"dismissed"`
}

type GeoPerformance struct {
	CountryCriterionID string  `json:"country_criterion_id"`
	LocationType       string  `json:"location_type"`
	Metrics            Metrics `json:"metrics"`
}
