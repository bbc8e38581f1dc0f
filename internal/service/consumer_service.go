package service

import (
	"context"
	"encoding/json"
	"time"

	"building-book-be/internal/dto"
	"building-book-be/internal/pkg/logger"
	"building-book-be/pkg/events"
	pktNats "building-book-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains section-saved messages off the in-process bus
// and forwards them to NATS so dashboard views showing live progress
// badges can react without polling. Forwarding is best-effort.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload dto.SectionSavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal section-saved message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages are never retriable
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DIGITALBOOK_SECTION_SAVED",
			Data: map[string]interface{}{
				"book_id":         payload.BookId,
				"building_id":     payload.BuildingId,
				"section_type":    payload.SectionType,
				"complete":        payload.Complete,
				"completed_count": payload.CompletedCount,
				"percentage":      payload.Percentage,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("EVENTS", "Failed to forward section-saved event to NATS", map[string]interface{}{
				"building_id": payload.BuildingId,
				"error":       err.Error(),
			})
		}
	}

	cs.logger.Info("EVENTS", "Section saved", map[string]interface{}{
		"building_id":     payload.BuildingId,
		"section_type":    payload.SectionType,
		"complete":        payload.Complete,
		"completed_count": payload.CompletedCount,
		"percentage":      payload.Percentage,
	})
	msg.Ack()
}
