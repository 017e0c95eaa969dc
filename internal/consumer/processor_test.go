package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestProcessorCommitsMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload := json.RawMessage(`{"item_ids":["creatine-monohydrate"]}`)
	msg := kafka.Message{
		Topic:     "catalog_events",
		Partition: 0,
		Offset:    12,
		Value:     payload,
		Time:      time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("catalog.updated")},
		},
	}

	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	handler := &RecordingHandler{}
	proc := NewProcessor(reader, handler)

	err := proc.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.count)
	require.Equal(t, 1, reader.commitCount)
	require.Equal(t, "catalog.updated", handler.last.EventType())
	require.JSONEq(t, string(payload), string(handler.last.Payload))
	require.Equal(t, int64(12), handler.last.Offset)
}

func TestProcessorCommitsAfterHandlerError(t *testing.T) {
	msg := kafka.Message{
		Topic:   "catalog_events",
		Offset:  3,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte("catalog.updated")}},
	}
	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	handler := &RecordingHandler{err: errors.New("boom")}

	before := testutil.ToFloat64(processedCounter.WithLabelValues("catalog_events", "catalog.updated", "failure"))
	err := NewProcessor(reader, handler).Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, reader.commitCount)
	require.Equal(t, before+1, testutil.ToFloat64(processedCounter.WithLabelValues("catalog_events", "catalog.updated", "failure")))
}

func TestProcessorRetriesFetchErrors(t *testing.T) {
	reader := &stubReader{
		fetchErrs: []error{errors.New("broker unavailable")},
		msgs:      []kafka.Message{{Topic: "catalog_events"}},
		errAfter:  context.Canceled,
	}
	handler := &RecordingHandler{}

	err := NewProcessor(reader, handler, WithRetryDelay(time.Millisecond)).Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.count)
}

func TestProcessorStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &stubReader{msgs: []kafka.Message{{Topic: "catalog_events"}}}
	handler := &RecordingHandler{}
	err := NewProcessor(reader, handler).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, handler.count)
}

type stubReader struct {
	msgs        []kafka.Message
	fetchErrs   []error
	idx         int
	commitCount int
	errAfter    error
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafka.Message{}, err
	}
	if r.idx >= len(r.msgs) {
		return kafka.Message{}, r.errAfter
	}
	msg := r.msgs[r.idx]
	r.idx++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCount++
	return nil
}

func (r *stubReader) Close() error { return nil }

type RecordingHandler struct {
	count int
	last  Message
	err   error
}

var _ Handler = (*RecordingHandler)(nil)

func (h *RecordingHandler) Handle(_ context.Context, msg Message) error {
	h.count++
	h.last = msg
	return h.err
}
