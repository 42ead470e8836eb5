package service

import (
	"context"
	"encoding/json"

	"ai-search-be/internal/dto"
	"ai-search-be/internal/pkg/logger"
	"ai-search-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService records user activity off the request path.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ACTIVITY", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// invalid payloads would loop forever on Nack
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.UserRepository().TouchLastActive(ctx, payload.UserId, payload.OccurredAt); err != nil {
		cs.logger.Error("ACTIVITY", "Failed to update last_active", map[string]interface{}{
			"user_id": payload.UserId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if payload.ConversationId != nil {
		if err := uow.ConversationRepository().Touch(ctx, *payload.ConversationId, payload.OccurredAt); err != nil {
			cs.logger.Error("ACTIVITY", "Failed to touch conversation", map[string]interface{}{
				"conversation_id": payload.ConversationId.String(),
				"error":           err.Error(),
			})
			msg.Nack()
			return
		}
	}

	cs.logger.Debug("ACTIVITY", "Activity recorded", map[string]interface{}{"user_id": payload.UserId.String()})
	msg.Ack()
}
