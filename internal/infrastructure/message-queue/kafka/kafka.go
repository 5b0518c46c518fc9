package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Blacksatth/Pagina-Web/config"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const maxRetries = 3

type messageWriter interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

// Publisher writes product events to the configured topic, retrying with a
// linear backoff.
type Publisher struct {
	mu      sync.Mutex
	conn    messageWriter
	backoff func(attempt int) time.Duration
}

func CreateKafkaProducer(config *config.Config) (*kafka.Conn, error) {
	return kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
}

func NewPublisher(conn *kafka.Conn) *Publisher {
	return newPublisher(conn)
}

func newPublisher(conn messageWriter) *Publisher {
	return &Publisher{
		conn: conn,
		backoff: func(attempt int) time.Duration {
			return time.Second * time.Duration(attempt+1)
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, key string, data interface{}) (err error) {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < maxRetries; i++ {
		_, err = p.conn.WriteMessages(kafka.Message{Key: []byte(key), Value: jsonMsg})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Int("attempt", i+1).Msg("")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff(i)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	log.Ctx(ctx).Debug().Str("component", "NopPublisher").Str("event_type", eventType).Str("key", key).Msg("event dropped")
	return nil
}
