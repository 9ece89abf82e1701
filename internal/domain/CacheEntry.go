package domain

import (
	"fmt"
	"time"
)

type ResourceType string

const (
	ResourceCampaigns       ResourceType = "campaigns"
	ResourceAdGroups        ResourceType = "ad_groups"
	ResourceKeywords        ResourceType = "keywords"
	ResourceDailyMetrics    ResourceType = "daily_metrics"
	ResourceRecommendations ResourceType = "recommendations"
	ResourceGeoPerformance  ResourceType = "geo_performance"
)

// ResourceTypes lista todas as classes de recurso em cache, cada uma na sua tabela
var ResourceTypes = []ResourceType{
	ResourceCampaigns,
	ResourceAdGroups,
	ResourceKeywords,
	ResourceDailyMetrics,
	ResourceRecommendations,
	ResourceGeoPerformance,
}

func (r ResourceType) Valid() bool {
	for _, known := range ResourceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// DateRange é inclusivo nas duas pontas e comparado por dia
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) *DateRange {
	return &DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
}

func (d *DateRange) Key() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%s_%s", d.Start.Format(time.DateOnly), d.End.Format(time.DateOnly))
}

func (d *DateRange) Contains(t time.Time) bool {
	day := TruncateDay(t)
	return !day.Before(TruncateDay(d.Start)) && !day.After(TruncateDay(d.End))
}

func (d *DateRange) Valid() bool {
	return d != nil && !d.Start.IsZero() && !d.End.IsZero() && !d.End.Before(d.Start)
}

func TruncateDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

type CacheKey struct {
	Resource          ResourceType
	ExternalAccountID string
	Range             *DateRange
}

func (k CacheKey) String() string {
	if k.Range == nil {
		return fmt.Sprintf("%s:%s", k.Resource, k.ExternalAccountID)
	}
	return fmt.Sprintf("%s:%s:%s", k.Resource, k.ExternalAccountID, k.Range.Key())
}

type CacheEntry struct {
	Key       CacheKey
	Payload   []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

type InvalidationResult struct {
	Resource ResourceType `json:"resource"`
	Deleted  int64        `json:"deleted"`
	Error    string       `json:"error,omitempty"`
}

// InvalidationReport descreve uma invalidação onde cada classe roda de forma independente.
// Falhas parciais são aceitas e ficam registradas aqui.
type InvalidationReport struct {
	ExternalAccountID string               `json:"external_account_id,omitempty"`
	Results           []InvalidationResult `json:"results"`
}

func (r InvalidationReport) Failed() []ResourceType {
	failed := make([]ResourceType, 0)
	for _, result := range r.Results {
		if result.Error != "" {
			failed = append(failed, result.Resource)
		}
	}
	return failed
}

func (r InvalidationReport) TotalDeleted() int64 {
	var total int64
	for _, result := range r.Results {
		total += result.Deleted
	}
	return total
}
