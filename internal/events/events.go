// Package events defines the domain event payloads exchanged over Kafka and
// publishes them.
package events

import "time"

// Event types carried in the event_type header.
const (
	TypeRecommendationResolved = "recommendation.resolved"
	TypeCatalogUpdated         = "catalog.updated"
)

// Default topics.
const (
	TopicRecommendations = "recommendation_events"
	TopicCatalog         = "catalog_events"
)

// RecommendationResolved is emitted after every resolution.
type RecommendationResolved struct {
	RequestID        string    `json:"request_id,omitempty"`
	StackID          string    `json:"stack_id"`
	Source           string    `json:"source"`
	ArchetypeID      string    `json:"archetype_id,omitempty"`
	MatchScore       *int      `json:"match_score,omitempty"`
	PrimaryGoal      string    `json:"primary_goal"`
	ItemIDs          []string  `json:"item_ids"`
	TotalMonthlyCost float64   `json:"total_monthly_cost"`
	States           []string  `json:"states"`
	ResolvedAt       time.Time `json:"resolved_at"`
}

// CatalogUpdated is emitted by the catalog owner when items or archetypes change.
type CatalogUpdated struct {
	ItemIDs   []string  `json:"item_ids,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
