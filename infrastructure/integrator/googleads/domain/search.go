package adsdomain

// SearchRequest é o corpo de POST customers/{id}/googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []Row  `json:"results"`
	NextPageToken string `json:"nextPageToken"`
	FieldMask     string `json:"fieldMask"`
}

// Row é uma linha do resultado. Só vêm preenchidos os recursos selecionados na query.
type Row struct {
	Customer         *Customer         `json:"customer,omitempty"`
	Campaign         *Campaign         `json:"campaign,omitempty"`
	CampaignBudget   *CampaignBudget   `json:"campaignBudget,omitempty"`
	AdGroup          *AdGroup          `json:"adGroup,omitempty"`
	AdGroupCriterion *AdGroupCriterion `json:"adGroupCriterion,omitempty"`
	Recommendation   *Recommendation   `json:"recommendation,omitempty"`
	GeographicView   *GeographicView   `json:"geographicView,omitempty"`
	Metrics          *Metrics          `json:"metrics,omitempty"`
	Segments         *Segments         `json:"segments,omitempty"`
}

// ListAccessibleCustomersResponse traz nomes no formato "customers/1234567890"
type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}
