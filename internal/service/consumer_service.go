package service

import (
	"context"
	"encoding/json"
	"log"

	"swift-assist-be/internal/dto"
	"swift-assist-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService bridges in-process chat turn events to the WebSocket hub so
// the hosting UI sees bot replies and escalations in real time.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
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
	var event dto.ChatTurnEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	userID, err := uuid.Parse(event.UserId)
	if err != nil {
		log.Printf("[ERROR] Turn event carries invalid user id %q", event.UserId)
		msg.Ack()
		return
	}

	cs.hub.Push(userID, event.EventType, event.Turn)
	msg.Ack()
}
