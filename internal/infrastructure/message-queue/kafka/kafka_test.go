package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	messages []kafka.Message
}

func (w *fakeWriter) WriteMessages(msgs ...kafka.Message) (int, error) {
	if w.failures > 0 {
		w.failures--
		return 0, errors.New("broker unavailable")
	}
	w.messages = append(w.messages, msgs...)

	return len(msgs), nil
}

func newTestPublisher(w *fakeWriter) *Publisher {
	p := newPublisher(w)
	p.backoff = func(int) time.Duration { return time.Millisecond }

	return p
}

func TestPublishRetries(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := newTestPublisher(w)

	err := p.Publish(context.Background(), "add_product", "101", map[string]string{"id": "101"})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, "101", string(w.messages[0].Key))

	var msg struct {
		EventType string            `json:"event_type"`
		Data      map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &msg))
	assert.Equal(t, "add_product", msg.EventType)
	assert.Equal(t, "101", msg.Data["id"])
}

func TestPublishGivesUp(t *testing.T) {
	w := &fakeWriter{failures: 5}
	p := newTestPublisher(w)

	err := p.Publish(context.Background(), "delete_product", "101", nil)

	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Empty(t, w.messages)
}
