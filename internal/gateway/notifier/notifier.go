package notifier

import "stockpilot/internal/decision"

// Notifier pushes a completed recommendation to an external channel.
type Notifier interface {
	NotifyRecommendation(rec decision.Recommendation) error
}
