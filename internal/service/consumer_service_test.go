package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"askn7-backend/internal/dto"
	"askn7-backend/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, message)
}

func (l *recordingLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *recordingLogger) Debug(_, message string, _ map[string]interface{}) { l.record(message) }
func (l *recordingLogger) Info(_, message string, _ map[string]interface{}) { l.record(message) }
func (l *recordingLogger) Warn(_, message string, _ map[string]interface{}) { l.record(message) }
func (l *recordingLogger) Error(_, message string, _ map[string]interface{}) { l.record(message) }
func (l *recordingLogger) Sync() error { return nil }

func TestPublishConsumeRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "CHAT_MESSAGE_SENT_TEST"

	logger := &recordingLogger{}
	consumer := NewConsumerService(pubSub, topic, logger)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(topic, pubSub)
	require.NoError(t, publisher.Publish(context.Background(), dto.ChatMessageSentEvent{
		SessionId: uuid.New(),
		UserId:    uuid.New(),
		Model:     "Mistral",
		SentAt:    time.Now(),
	}))

	assert.Eventually(t, func() bool {
		for _, e := range logger.snapshot() {
			if e == "Chat message exchanged" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestPublisherStampsEventType(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "CHAT_MESSAGE_SENT_METADATA"

	messages, err := pubSub.Subscribe(context.Background(), topic)
	require.NoError(t, err)

	publisher := NewPublisherService(topic, pubSub)
	sent := dto.ChatMessageSentEvent{
		SessionId: uuid.New(),
		UserId:    uuid.New(),
		SentAt:    time.Now(),
	}
	require.NoError(t, publisher.Publish(context.Background(), sent))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, dto.ChatMessageSentEventType, msg.Metadata.Get(events.TypeMetadataKey))

		var got dto.ChatMessageSentEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, sent.SessionId, got.SessionId)
		assert.Equal(t, sent.UserId, got.UserId)
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestConsumerAcksMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "CHAT_MESSAGE_SENT_MALFORMED"

	logger := &recordingLogger{}
	consumer := NewConsumerService(pubSub, topic, logger)
	require.NoError(t, consumer.Consume(context.Background()))

	msg := message.NewMessage(watermill.NewUUID(), []byte("not-json"))
	require.NoError(t, pubSub.Publish(topic, msg))

	assert.Eventually(t, func() bool {
		for _, e := range logger.snapshot() {
			if e == "Failed to unmarshal chat event" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
