package service

import (
	"context"
	"encoding/json"

	"askn7-backend/internal/dto"
	"askn7-backend/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains chat activity events and writes them to the isolated
// activity log. It never feeds back into the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	activityLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    activityLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ChatMessageSentEvent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("chat_activity", "Failed to unmarshal chat event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("chat_activity", "Chat message exchanged", map[string]interface{}{
		"session_id":     payload.SessionId.String(),
		"user_id":        payload.UserId.String(),
		"documents_used": payload.DocumentsUsed,
		"model":          payload.Model,
	})
	msg.Ack()
}
