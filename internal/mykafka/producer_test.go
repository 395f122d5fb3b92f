package mykafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/portfolio/pkg/logging"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEvent(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "portfolio_events"}

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.PublishEvent(context.Background(), "7", ProjectEvent{
		Type: ProjectCreated, OccurredAt: at, ProjectID: 7, Title: "site",
	}))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "7", string(w.msgs[0].Key))

	var event map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, "project_created", event["type"])
	assert.EqualValues(t, 7, event["projectID"])
	assert.Equal(t, "site", event["title"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishEventWriteError(t *testing.T) {
	t.Parallel()

	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}, topic: "portfolio_events"}
	err := p.PublishEvent(context.Background(), "1", RatingEvent{Type: RatingSubmitted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewWithoutBrokersIsNop(t *testing.T) {
	t.Parallel()

	p := New(nil, "portfolio_events")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.PublishEvent(context.Background(), "k", "v"))
	assert.NoError(t, p.Close())

	assert.IsType(t, &Producer{}, New([]string{"localhost:9092"}, "portfolio_events"))
}

func TestNewProducerWritesAsync(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"localhost:9092"}, "portfolio_events")
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
	assert.Equal(t, "portfolio_events", w.Topic)
}

func TestCompletionLogsDeliveryFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &Producer{topic: "portfolio_events", log: logging.NewWithWriter(&buf, "info")}

	p.completed([]kafka.Message{{Key: []byte("3")}}, nil)
	assert.Empty(t, buf.String())

	p.completed([]kafka.Message{{Key: []byte("3")}, {Key: []byte("4")}}, errors.New("broker down"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "WARN", first["level"])
	assert.Equal(t, "event_publish_failed", first["msg"])
	assert.Equal(t, "3", first["key"])
	assert.Equal(t, "broker down", first["error"])
}
