package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"example.com/supplementstack/internal/cache"
	"example.com/supplementstack/internal/events"
	"example.com/supplementstack/internal/logging"
)

// CatalogHandler marks the catalog snapshot stale when the catalog owner
// announces a change. Other event types are ignored.
type CatalogHandler struct {
	invalidator cache.Invalidator
	logger      zerolog.Logger
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(invalidator cache.Invalidator) *CatalogHandler {
	if invalidator == nil {
		invalidator = cache.NoopInvalidator{}
	}
	return &CatalogHandler{
		invalidator: invalidator,
		logger:      logging.WithComponent("catalog-handler"),
	}
}

// Handle implements Handler.
func (h *CatalogHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType() != events.TypeCatalogUpdated {
		return nil
	}

	var evt events.CatalogUpdated
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", events.TypeCatalogUpdated, err)
		}
	}

	key := strings.Join(evt.ItemIDs, ",")
	if err := h.invalidator.Invalidate(ctx, key); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	h.logger.Info().
		Strs("item_ids", evt.ItemIDs).
		Str("reason", evt.Reason).
		Msg("catalog snapshot invalidated")
	return nil
}
