package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const (
	BookingTopic       = "booking-events"
	StatsConsumerGroup = "stats"
)

// EventBooking is published after every successful admission or
// administrative amendment.
type EventBooking struct {
	Timestamp      time.Time `json:"timestamp"`
	ReservationUid string    `json:"reservationUid"`
	Username       string    `json:"username"`
	VehicleUid     string    `json:"vehicleUid"`
	Category       string    `json:"category"`
	EventType      string    `json:"eventType"` // CREATED | AMENDED
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group loop until ctx is cancelled. Rebalances
// re-enter Consume, so the handler must be reusable.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic string, log *zap.Logger) {
	for {
		if err := consumer.Consume(ctx, []string{topic}, handler); err != nil {
			log.Error("kafka consume", zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func Publish(producer sarama.SyncProducer, topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	_, _, err = producer.SendMessage(msg)
	return err
}
