//go:build integration

package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"example.com/supplementstack/internal/catalog"
	"example.com/supplementstack/internal/events"
)

func TestKafkaCatalogUpdateReloadsView(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx, testcontainers.WithEnv(map[string]string{
		"KAFKA_AUTO_CREATE_TOPICS_ENABLE": "true",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	conn, err := kafka.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             events.TopicCatalog,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))

	store := catalog.NewMemoryStore()
	view := catalog.NewView(store, time.Hour)
	items, err := view.GetItems(ctx, []string{catalog.ItemMagnesium})
	require.NoError(t, err)
	updated := items[0]
	updated.Price += 100
	require.NoError(t, store.Upsert(ctx, updated))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     "catalog-integration",
		Topic:       events.TopicCatalog,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	consumerCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		_ = NewProcessor(reader, NewCatalogHandler(view)).Run(consumerCtx)
	}()

	producer := events.NewKafkaProducer(brokers)
	defer producer.Close()
	pub := events.NewKafkaPublisher(producer, "")
	require.NoError(t, pub.PublishCatalogUpdated(ctx, events.TopicCatalog, events.CatalogUpdated{
		ItemIDs:   []string{catalog.ItemMagnesium},
		Reason:    "price change",
		UpdatedAt: time.Now().UTC(),
	}))

	require.Eventually(t, func() bool {
		items, err := view.GetItems(ctx, []string{catalog.ItemMagnesium})
		return err == nil && items[0].Price == updated.Price
	}, 60*time.Second, 250*time.Millisecond)
}
