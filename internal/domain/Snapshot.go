package domain

import (
	"time"

	"github.com/vfg2006/adsync-api/pkg/utils"
)

// Snapshot é o agregado diário imutável de uma conta. Único por (conta, data).
type Snapshot struct {
	ID                int64     `json:"id"`
	ExternalAccountID string    `json:"external_account_id"`
	Date              time.Time `json:"date"`
	Spend             float64   `json:"spend"`
	Impressions       int64     `json:"impressions"`
	Clicks            int64     `json:"clicks"`
	Conversions       float64   `json:"conversions"`
	ConversionValue   float64   `json:"conversion_value"`
	CTR               float64   `json:"ctr"`
	CPA               float64   `json:"cpa"`
	ROAS              float64   `json:"roas"`
	ActiveCampaigns   int       `json:"active_campaigns"`
	PausedCampaigns   int       `json:"paused_campaigns"`
	CreatedAt         time.Time `json:"created_at"`
}

// CTR em porcentagem; zero sem impressões
func CTR(clicks, impressions int64) float64 {
	return utils.Ratio(float64(clicks)*100, float64(impressions))
}

// CPA é zero quando não há conversões
func CPA(spend, conversions float64) float64 {
	return utils.Ratio(spend, conversions)
}

// ROAS é zero quando não há gasto
func ROAS(conversionValue, spend float64) float64 {
	return utils.Ratio(conversionValue, spend)
}

// NewSnapshotFromCampaigns soma as métricas das campanhas e deriva CTR, CPA e ROAS
func NewSnapshotFromCampaigns(accountID string, date time.Time, campaigns []Campaign) *Snapshot {
	snapshot := &Snapshot{
		ExternalAccountID: accountID,
		Date:              TruncateDay(date),
	}

	for _, campaign := range campaigns {
		snapshot.Spend += campaign.Metrics.Spend
		snapshot.Impressions += campaign.Metrics.Impressions
		snapshot.Clicks += campaign.Metrics.Clicks
		snapshot.Conversions += campaign.Metrics.Conversions
		snapshot.ConversionValue += campaign.Metrics.ConversionValue

		switch campaign.Status {
		case CampaignStatusEnabled:
			snapshot.ActiveCampaigns++
		case CampaignStatusPaused:
			snapshot.PausedCampaigns++
		}
	}

	snapshot.Spend = utils.RoundWithTwoDecimalPlace(snapshot.Spend)
	snapshot.ConversionValue = utils.RoundWithTwoDecimalPlace(snapshot.ConversionValue)
	snapshot.CTR = CTR(snapshot.Clicks, snapshot.Impressions)
	snapshot.CPA = CPA(snapshot.Spend, snapshot.Conversions)
	snapshot.ROAS = ROAS(snapshot.ConversionValue, snapshot.Spend)

	return snapshot
}

type MetricDelta struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Percent  float64 `json:"percent"`
}

// NewMetricDelta usa previous como base; base zero resulta em 0%
func NewMetricDelta(current, previous float64) MetricDelta {
	delta := MetricDelta{
		Current:  current,
		Previous: previous,
		Change:   utils.RoundWithTwoDecimalPlace(current - previous),
	}

	if previous != 0 {
		delta.Percent = utils.RoundWithTwoDecimalPlace((current - previous) / previous * 100)
	}

	return delta
}

type SnapshotComparison struct {
	Spend       MetricDelta `json:"spend"`
	Impressions MetricDelta `json:"impressions"`
	Clicks      MetricDelta `json:"clicks"`
	Conversions MetricDelta `json:"conversions"`
	CTRChange   float64     `json:"ctr_change"`
	CPAChange   float64     `json:"cpa_change"`
	ROASChange  float64     `json:"roas_change"`
}

func compareMetrics(current, previous PeriodMetrics) SnapshotComparison {
	return SnapshotComparison{
		Spend:       NewMetricDelta(current.Spend, previous.Spend),
		Impressions: NewMetricDelta(float64(current.Impressions), float64(previous.Impressions)),
		Clicks:      NewMetricDelta(float64(current.Clicks), float64(previous.Clicks)),
		Conversions: NewMetricDelta(current.Conversions, previous.Conversions),
		CTRChange:   utils.RoundWithTwoDecimalPlace(current.CTR - previous.CTR),
		CPAChange:   utils.RoundWithTwoDecimalPlace(current.CPA - previous.CPA),
		ROASChange:  utils.RoundWithTwoDecimalPlace(current.ROAS - previous.ROAS),
	}
}

// CompareSnapshots mede current contra previous
func CompareSnapshots(current, previous *Snapshot) SnapshotComparison {
	return compareMetrics(current.metrics(), previous.metrics())
}

type PeriodMetrics struct {
	Spend           float64 `json:"spend"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	CTR             float64 `json:"ctr"`
	CPA             float64 `json:"cpa"`
	ROAS            float64 `json:"roas"`
}

func (s *Snapshot) metrics() PeriodMetrics {
	return PeriodMetrics{
		Spend:           s.Spend,
		Impressions:     s.Impressions,
		Clicks:          s.Clicks,
		Conversions:     s.Conversions,
		ConversionValue: s.ConversionValue,
		CTR:             s.CTR,
		CPA:             s.CPA,
		ROAS:            s.ROAS,
	}
}

type PeriodAggregate struct {
	Range   DateRange     `json:"range"`
	Days    int           `json:"days"`
	Metrics PeriodMetrics `json:"metrics"`
}

// AggregateSnapshots soma os snapshots do período. CTR é ponderado por impressões,
// CPA e ROAS são ponderados por gasto.
func AggregateSnapshots(period DateRange, snapshots []*Snapshot) PeriodAggregate {
	aggregate := PeriodAggregate{Range: period}

	var weightedCTR, weightedCPA, weightedROAS float64

	for _, snapshot := range snapshots {
		if !period.Contains(snapshot.Date) {
			continue
		}

		aggregate.Days++
		aggregate.Metrics.Spend += snapshot.Spend
		aggregate.Metrics.Impressions += snapshot.Impressions
		aggregate.Metrics.Clicks += snapshot.Clicks
		aggregate.Metrics.Conversions += snapshot.Conversions
		aggregate.Metrics.ConversionValue += snapshot.ConversionValue

		weightedCTR += snapshot.CTR * float64(snapshot.Impressions)
		weightedCPA += snapshot.CPA * snapshot.Spend
		weightedROAS += snapshot.ROAS * snapshot.Spend
	}

	if aggregate.Metrics.Impressions > 0 {
		aggregate.Metrics.CTR = utils.RoundWithTwoDecimalPlace(weightedCTR / float64(aggregate.Metrics.Impressions))
	}
	if aggregate.Metrics.Spend > 0 {
		aggregate.Metrics.CPA = utils.RoundWithTwoDecimalPlace(weightedCPA / aggregate.Metrics.Spend)
		aggregate.Metrics.ROAS = utils.RoundWithTwoDecimalPlace(weightedROAS / aggregate.Metrics.Spend)
	}

	aggregate.Metrics.Spend = utils.RoundWithTwoDecimalPlace(aggregate.Metrics.Spend)
	aggregate.Metrics.ConversionValue = utils.RoundWithTwoDecimalPlace(aggregate.Metrics.ConversionValue)

	return aggregate
}

type TrendReport struct {
	ExternalAccountID string             `json:"external_account_id"`
	Period1           PeriodAggregate    `json:"period1"`
	Period2           PeriodAggregate    `json:"period2"`
	Change            SnapshotComparison `json:"change"`
}

// NewTrendReport compara period1 tendo period2 como base
func NewTrendReport(accountID string, period1, period2 PeriodAggregate) *TrendReport {
	return &TrendReport{
		ExternalAccountID: accountID,
		Period1:           period1,
		Period2:           period2,
		Change:            compareMetrics(period1.Metrics, period2.Metrics),
	}
}
