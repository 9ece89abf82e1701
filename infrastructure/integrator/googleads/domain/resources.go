package adsdomain

// Campos int64 chegam como string no JSON da API REST.

type Customer struct {
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	Manager         bool   `json:"manager"`
}

type Campaign struct {
	ResourceName           string `json:"resourceName"`
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Status                 string `json:"status"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type CampaignBudget struct {
	AmountMicros string `json:"amountMicros"`
}

type AdGroup struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Campaign     string `json:"campaign"`
}

type KeywordInfo struct {
	Text      string `json:"text"`
	MatchType string `json:"matchType"`
}

type QualityInfo struct {
	QualityScore *int `json:"qualityScore,omitempty"`
}

type AdGroupCriterion struct {
	CriterionID string       `json:"criterionId"`
	Status      string       `json:"status"`
	AdGroup     string       `json:"adGroup"`
	Keyword     *KeywordInfo `json:"keyword,omitempty"`
	QualityInfo *QualityInfo `json:"qualityInfo,omitempty"`
}

type Recommendation struct {
	ResourceName string `json:"resourceName"`
	Type         string `json:"type"`
	Campaign     string `json:"campaign"`
	Dismissed    bool   `json:"dismissed"`
}

type GeographicView struct {
	CountryCriterionID string `json:"countryCriterionId"`
	LocationType       string `json:"locationType"`
}

type Metrics struct {
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	CostMicros       string  `json:"costMicros"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
	Ctr              float64 `json:"ctr"`
	AverageCpc       float64 `json:"averageCpc"`
}

type Segments struct {
	Date string `json:"date"`
}
