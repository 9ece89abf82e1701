package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotFromCampaigns(t *testing.T) {
	date := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	campaigns := []Campaign{
		{
			ID:     "A",
			Status: CampaignStatusEnabled,
			Metrics: Metrics{
				Spend:           100,
				Impressions:     1000,
				Clicks:          50,
				Conversions:     5,
				ConversionValue: 400,
			},
		},
		{
			ID:     "B",
			Status: CampaignStatusPaused,
			Metrics: Metrics{
				Spend:           50,
				Impressions:     1000,
				Clicks:          30,
				Conversions:     5,
				ConversionValue: 200,
			},
		},
		{
			ID:     "C",
			Status: CampaignStatusRemoved,
		},
	}

	snapshot := NewSnapshotFromCampaigns("1234567890", date, campaigns)

	assert.Equal(t, "1234567890", snapshot.ExternalAccountID)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), snapshot.Date)
	assert.Equal(t, 1, snapshot.ActiveCampaigns)
	assert.Equal(t, 1, snapshot.PausedCampaigns)
	assert.Equal(t, 150.0, snapshot.Spend)
	assert.Equal(t, int64(2000), snapshot.Impressions)
	assert.Equal(t, int64(80), snapshot.Clicks)
	assert.Equal(t, 10.0, snapshot.Conversions)
	assert.Equal(t, 15.0, snapshot.CPA)
	assert.Equal(t, 4.0, snapshot.CTR)
	assert.Equal(t, 4.0, snapshot.ROAS)
}

func TestDerivedMetrics_ZeroDenominators(t *testing.T) {
	snapshot := NewSnapshotFromCampaigns("1", time.Now(), nil)

	assert.Zero(t, snapshot.CTR)
	assert.Zero(t, snapshot.CPA)
	assert.Zero(t, snapshot.ROAS)

	assert.Zero(t, CPA(120, 0))
	assert.Zero(t, ROAS(300, 0))
	assert.Zero(t, CTR(10, 0))
}

func TestCompareSnapshots(t *testing.T) {
	previous := &Snapshot{Spend: 100, Impressions: 0, Clicks: 10, CTR: 2, CPA: 10, ROAS: 3}
	current := &Snapshot{Spend: 150, Impressions: 500, Clicks: 15, CTR: 3, CPA: 12.5, ROAS: 2.5}

	comparison := CompareSnapshots(current, previous)

	assert.Equal(t, 50.0, comparison.Spend.Change)
	assert.Equal(t, 50.0, comparison.Spend.Percent)

	assert.Equal(t, 500.0, comparison.Impressions.Change)
	assert.Equal(t, 0.0, comparison.Impressions.Percent, "zero baseline yields 0%")

	assert.Equal(t, 5.0, comparison.Clicks.Change)
	assert.Equal(t, 50.0, comparison.Clicks.Percent)

	assert.Equal(t, 1.0, comparison.CTRChange)
	assert.Equal(t, 2.5, comparison.CPAChange)
	assert.Equal(t, -0.5, comparison.ROASChange)
}

func TestAggregateSnapshots_Weighted(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	snapshots := []*Snapshot{
		{Date: day(1), Spend: 100, Impressions: 1000, Clicks: 10, Conversions: 10, ConversionValue: 200, CTR: 1, CPA: 10, ROAS: 2},
		{Date: day(2), Spend: 300, Impressions: 3000, Clicks: 90, Conversions: 10, ConversionValue: 1200, CTR: 3, CPA: 30, ROAS: 4},
		{Date: day(20), Spend: 999, Impressions: 1, CTR: 100},
	}

	aggregate := AggregateSnapshots(DateRange{Start: day(1), End: day(7)}, snapshots)

	assert.Equal(t, 2, aggregate.Days)
	assert.Equal(t, 400.0, aggregate.Metrics.Spend)
	assert.Equal(t, int64(4000), aggregate.Metrics.Impressions)
	assert.Equal(t, int64(100), aggregate.Metrics.Clicks)
	// (1*1000 + 3*3000) / 4000
	assert.Equal(t, 2.5, aggregate.Metrics.CTR)
	// (10*100 + 30*300) / 400
	assert.Equal(t, 25.0, aggregate.Metrics.CPA)
	// (2*100 + 4*300) / 400
	assert.Equal(t, 3.5, aggregate.Metrics.ROAS)
}

func TestNewTrendReport_Period2IsBaseline(t *testing.T) {
	period1 := PeriodAggregate{Metrics: PeriodMetrics{Spend: 150}}
	period2 := PeriodAggregate{Metrics: PeriodMetrics{Spend: 100}}

	report := NewTrendReport("1", period1, period2)

	assert.Equal(t, 50.0, report.Change.Spend.Change)
	assert.Equal(t, 50.0, report.Change.Spend.Percent)
}
