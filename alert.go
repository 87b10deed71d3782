package idxwatch

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AlertKind selects the condition an alert watches for.
type AlertKind string

const (
	AlertAbove       AlertKind = "above"        // last price at or above the threshold
	AlertBelow       AlertKind = "below"        // last price at or below the threshold
	AlertPercentGain AlertKind = "percent-gain" // daily change at or above the threshold percent
	AlertPercentLoss AlertKind = "percent-loss" // daily change at or below minus the threshold percent
)

// DefaultAlertCooldown is the minimum delay between two firings of the same
// alert. Quotes refresh far more often than a user wants to be nagged.
const DefaultAlertCooldown = 30 * time.Minute

// Alert is a persistent price condition on a single symbol.
type Alert struct {
	Symbol    Symbol          `json:"symbol"`
	Kind      AlertKind       `json:"kind"`
	Threshold decimal.Decimal `json:"threshold"`
	Enabled   bool            `json:"enabled"`
	LastFired time.Time       `json:"last_fired,omitzero"`
}

// Describe renders the alert condition for listings and notifications.
func (a Alert) Describe() string {
	switch a.Kind {
	case AlertAbove:
		return fmt.Sprintf("%s above %s", a.Symbol.DisplayName(), IDR(a.Threshold))
	case AlertBelow:
		return fmt.Sprintf("%s below %s", a.Symbol.DisplayName(), IDR(a.Threshold))
	case AlertPercentGain:
		return fmt.Sprintf("%s up %s%%", a.Symbol.DisplayName(), a.Threshold)
	case AlertPercentLoss:
		return fmt.Sprintf("%s down %s%%", a.Symbol.DisplayName(), a.Threshold)
	default:
		return fmt.Sprintf("%s %s %s", a.Symbol.DisplayName(), a.Kind, a.Threshold)
	}
}

// met reports whether the quote satisfies the alert condition.
func (a Alert) met(q Quote) bool {
	switch a.Kind {
	case AlertAbove:
		return q.Price.Cmp(a.Threshold) >= 0
	case AlertBelow:
		return q.Price.Cmp(a.Threshold) <= 0
	case AlertPercentGain:
		return decimal.NewFromFloat(q.ChangePercent).Cmp(a.Threshold) >= 0
	case AlertPercentLoss:
		return decimal.NewFromFloat(q.ChangePercent).Neg().Cmp(a.Threshold) >= 0
	default:
		return false
	}
}

// Check fires the alert if it is enabled, its condition holds against the
// quote, and the cooldown since the previous firing has elapsed. Firing
// stamps LastFired so a still-true condition stays quiet until the next
// cooldown window.
func (a *Alert) Check(q Quote, now time.Time, cooldown time.Duration) bool {
	if !a.Enabled || !a.met(q) {
		return false
	}
	if !a.LastFired.IsZero() && now.Sub(a.LastFired) < cooldown {
		return false
	}
	a.LastFired = now
	return true
}

// CheckAlerts runs every alert against the cache and returns the ones that
// fired. Alerts on symbols without a cached quote are skipped.
func CheckAlerts(alerts []Alert, cache *QuoteCache, now time.Time, cooldown time.Duration) []Alert {
	var fired []Alert
	for i := range alerts {
		q, ok := cache.Get(alerts[i].Symbol)
		if !ok {
			continue
		}
		if alerts[i].Check(q, now, cooldown) {
			fired = append(fired, alerts[i])
		}
	}
	return fired
}
