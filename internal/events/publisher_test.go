package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	topic string
	msgs  []kafka.Message
	err   error
}

func (w *recordingWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.topic = topic
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisherWritesResolvedEvent(t *testing.T) {
	w := &recordingWriter{}
	pub := NewKafkaPublisher(w, "")

	score := 82
	evt := RecommendationResolved{
		StackID:          "stack-1",
		Source:           "cached",
		ArchetypeID:      "young-male-lifter",
		MatchScore:       &score,
		PrimaryGoal:      "muscle-building",
		ItemIDs:          []string{"whey-protein-isolate", "creatine-monohydrate"},
		TotalMonthlyCost: 64.98,
		States:           []string{"start", "normalize", "matching", "annotating", "resolved"},
		ResolvedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, pub.PublishResolved(context.Background(), evt))

	require.Equal(t, TopicRecommendations, w.topic)
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "stack-1", string(msg.Key))
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, TypeRecommendationResolved, string(msg.Headers[0].Value))

	var decoded RecommendationResolved
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, evt, decoded)
}

func TestKafkaPublisherWrapsWriterError(t *testing.T) {
	broker := errors.New("broker unavailable")
	pub := NewKafkaPublisher(&recordingWriter{err: broker}, "custom")
	err := pub.PublishResolved(context.Background(), RecommendationResolved{StackID: "s"})
	require.ErrorIs(t, err, broker)
	require.Contains(t, err.Error(), "custom")
}

func TestKafkaPublisherWritesCatalogUpdated(t *testing.T) {
	w := &recordingWriter{}
	pub := NewKafkaPublisher(w, "")

	evt := CatalogUpdated{ItemIDs: []string{"creatine-monohydrate"}, Reason: "seed", UpdatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, pub.PublishCatalogUpdated(context.Background(), "", evt))
	require.Equal(t, TopicCatalog, w.topic)
	require.Equal(t, TypeCatalogUpdated, string(w.msgs[0].Headers[0].Value))

	var decoded CatalogUpdated
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	require.Equal(t, evt, decoded)
}
