package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"timeslots-service/internal/config"
	"timeslots-service/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types carried on the events topic.
const (
	EventTypeEntrySaved      = "entry.saved"
	EventTypeGoalCreated     = "goal.created"
	EventTypeTemplateApplied = "template.applied"
)

// Event is the JSON envelope for every published message.
type Event struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	UserID    string          `json:"userId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type EntrySavedPayload struct {
	Date         string `json:"date"`
	Hours        int    `json:"hours"`
	SegmentCount int    `json:"segmentCount"`
}

type GoalCreatedPayload struct {
	GoalID string `json:"goalId"`
	Name   string `json:"name"`
}

type TemplateAppliedPayload struct {
	TemplateID string `json:"templateId"`
	Date       string `json:"date"`
}

// Producer handles publishing events to Kafka
type Producer struct {
	writer *kafka.Writer
}

var _ service.EventPublisher = (*Producer)(nil)

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true, // Async for better performance
	}

	return &Producer{
		writer: writer,
	}
}

// PublishEntrySaved publishes an entry saved event
func (p *Producer) PublishEntrySaved(ctx context.Context, userID uuid.UUID, date string, hours, segmentCount int) error {
	payload := EntrySavedPayload{
		Date:         date,
		Hours:        hours,
		SegmentCount: segmentCount,
	}

	if err := p.publish(ctx, EventTypeEntrySaved, userID, payload); err != nil {
		return fmt.Errorf("failed to publish entry saved event: %w", err)
	}

	log.Printf("Published entry saved event for user_id: %s date: %s", userID, date)
	return nil
}

// PublishGoalCreated publishes a goal created event
func (p *Producer) PublishGoalCreated(ctx context.Context, userID uuid.UUID, goalID, name string) error {
	payload := GoalCreatedPayload{
		GoalID: goalID,
		Name:   name,
	}

	if err := p.publish(ctx, EventTypeGoalCreated, userID, payload); err != nil {
		return fmt.Errorf("failed to publish goal created event: %w", err)
	}

	log.Printf("Published goal created event for user_id: %s goal_id: %s", userID, goalID)
	return nil
}

// PublishTemplateApplied publishes a template applied event
func (p *Producer) PublishTemplateApplied(ctx context.Context, userID uuid.UUID, templateID, date string) error {
	payload := TemplateAppliedPayload{
		TemplateID: templateID,
		Date:       date,
	}

	if err := p.publish(ctx, EventTypeTemplateApplied, userID, payload); err != nil {
		return fmt.Errorf("failed to publish template applied event: %w", err)
	}

	log.Printf("Published template applied event for user_id: %s template_id: %s", userID, templateID)
	return nil
}

func (p *Producer) publish(ctx context.Context, eventType string, userID uuid.UUID, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := Event{
		EventID:   NewEventID(),
		EventType: eventType,
		UserID:    userID.String(),
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(userID.String()),
		Value: data,
		Time:  time.Now(),
	}

	return p.writer.WriteMessages(ctx, message)
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Helper function to create event ID
func NewEventID() string {
	return uuid.New().String()
}
