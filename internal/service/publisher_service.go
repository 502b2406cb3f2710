package service

import (
	"encoding/json"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishPracticeEvent(msg dto.PublishPracticeEventMessage) error
}

type publisherService struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewPublisherService(publisher message.Publisher, topic string, log logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

// PublishPracticeEvent puts an answer/completion event on the in-process
// progress topic. Publishing failures are surfaced to the caller but should
// never fail the request that produced the event.
func (s *publisherService) PublishPracticeEvent(msg dto.PublishPracticeEventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(s.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Error("PublisherService", "Failed to publish practice event", map[string]interface{}{
			"type":  msg.Type,
			"error": err.Error(),
		})
		return err
	}

	return nil
}
