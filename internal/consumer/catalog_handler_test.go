package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/supplementstack/internal/catalog"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/events"
)

type recordingInvalidator struct {
	keys []string
	err  error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, key string) error {
	r.keys = append(r.keys, key)
	return r.err
}

func catalogMessage(t *testing.T, evt events.CatalogUpdated) Message {
	t.Helper()
	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	return Message{
		Topic:   events.TopicCatalog,
		Payload: payload,
		Headers: map[string]string{"event_type": events.TypeCatalogUpdated},
	}
}

func TestCatalogHandlerInvalidates(t *testing.T) {
	inv := &recordingInvalidator{}
	h := NewCatalogHandler(inv)

	msg := catalogMessage(t, events.CatalogUpdated{ItemIDs: []string{"a", "b"}, Reason: "price change", UpdatedAt: time.Now()})
	require.NoError(t, h.Handle(context.Background(), msg))
	require.Equal(t, []string{"a,b"}, inv.keys)
}

func TestCatalogHandlerIgnoresOtherEvents(t *testing.T) {
	inv := &recordingInvalidator{}
	h := NewCatalogHandler(inv)

	msg := Message{Topic: events.TopicCatalog, Headers: map[string]string{"event_type": events.TypeRecommendationResolved}}
	require.NoError(t, h.Handle(context.Background(), msg))
	require.Empty(t, inv.keys)
}

func TestCatalogHandlerErrors(t *testing.T) {
	h := NewCatalogHandler(&recordingInvalidator{})
	bad := Message{Payload: json.RawMessage(`{"item_ids":`), Headers: map[string]string{"event_type": events.TypeCatalogUpdated}}
	require.Error(t, h.Handle(context.Background(), bad))

	failing := NewCatalogHandler(&recordingInvalidator{err: errors.New("nope")})
	err := failing.Handle(context.Background(), catalogMessage(t, events.CatalogUpdated{}))
	require.ErrorContains(t, err, "invalidate catalog")
}

func TestCatalogHandlerReloadsView(t *testing.T) {
	store := catalog.NewMemoryStore()
	view := catalog.NewView(store, time.Hour)
	ctx := context.Background()

	items, err := view.GetItems(ctx, []string{catalog.ItemCreatine})
	require.NoError(t, err)
	original := items[0].Price

	updated := items[0]
	updated.Price = original + 500
	require.NoError(t, store.Upsert(ctx, updated))

	require.NoError(t, NewCatalogHandler(view).Handle(ctx, catalogMessage(t, events.CatalogUpdated{ItemIDs: []string{catalog.ItemCreatine}})))

	require.Eventually(t, func() bool {
		items, err := view.GetItems(ctx, []string{catalog.ItemCreatine})
		return err == nil && items[0].Price == original+domain.Cents(500)
	}, time.Second, 5*time.Millisecond)
}
