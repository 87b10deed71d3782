package idxwatch

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAlertConditions(t *testing.T) {
	q := quoteOf("BBCA", 9000)
	q.ChangePercent = -3.5

	tests := []struct {
		name      string
		kind      AlertKind
		threshold int64
		want      bool
	}{
		{"above met", AlertAbove, 9000, true},
		{"above not met", AlertAbove, 9500, false},
		{"below met", AlertBelow, 9000, true},
		{"below not met", AlertBelow, 8500, false},
		{"gain not met on loss", AlertPercentGain, 2, false},
		{"loss met", AlertPercentLoss, 3, true},
		{"loss not met", AlertPercentLoss, 4, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Alert{Symbol: "BBCA", Kind: tc.kind, Threshold: decimal.NewFromInt(tc.threshold), Enabled: true}
			if got := a.Check(q, time.Now(), DefaultAlertCooldown); got != tc.want {
				t.Errorf("Check() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAlertCooldown(t *testing.T) {
	a := Alert{Symbol: "BBCA", Kind: AlertAbove, Threshold: decimal.NewFromInt(8000), Enabled: true}
	q := quoteOf("BBCA", 9000)
	now := time.Now()

	if !a.Check(q, now, DefaultAlertCooldown) {
		t.Fatal("first check must fire")
	}
	if a.Check(q, now.Add(time.Minute), DefaultAlertCooldown) {
		t.Error("must stay quiet during the cooldown")
	}
	if !a.Check(q, now.Add(DefaultAlertCooldown), DefaultAlertCooldown) {
		t.Error("must fire again once the cooldown elapsed")
	}
}

func TestAlertDisabledNeverFires(t *testing.T) {
	a := Alert{Symbol: "BBCA", Kind: AlertAbove, Threshold: decimal.NewFromInt(1), Enabled: false}
	if a.Check(quoteOf("BBCA", 9000), time.Now(), 0) {
		t.Error("disabled alert fired")
	}
}

func TestCheckAlertsSkipsUnquoted(t *testing.T) {
	cache := NewQuoteCache()
	cache.Update(Batch{"BBCA": Found(quoteOf("BBCA", 9000))})

	alerts := []Alert{
		{Symbol: "BBCA", Kind: AlertAbove, Threshold: decimal.NewFromInt(8000), Enabled: true},
		{Symbol: "TLKM", Kind: AlertAbove, Threshold: decimal.NewFromInt(1), Enabled: true},
	}
	fired := CheckAlerts(alerts, cache, time.Now(), DefaultAlertCooldown)
	if len(fired) != 1 || fired[0].Symbol != "BBCA" {
		t.Errorf("fired = %v, want only BBCA", fired)
	}
	if alerts[0].LastFired.IsZero() {
		t.Error("firing must stamp LastFired on the stored alert")
	}
}
