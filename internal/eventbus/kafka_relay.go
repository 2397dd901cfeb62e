package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaRelay adalah transport relay alternatif di atas satu topic Kafka.
// Setiap proses memakai consumer group unik agar semua proses menerima
// seluruh event, bukan berbagi partisi.
type KafkaRelay struct {
	writer  *kafkago.Writer
	brokers []string
	topic   string
	origin  string
	logger  *zap.Logger
}

func NewKafkaRelay(writer *kafkago.Writer, brokers []string, topic string, logger *zap.Logger) *KafkaRelay {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &KafkaRelay{
		writer:  writer,
		brokers: brokers,
		topic:   topic,
		origin:  uuid.NewString(),
		logger:  l.Named("eventbus.kafka"),
	}
}

func (k *KafkaRelay) Broadcast(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev.Value)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(wireEvent{
		Origin: k.origin,
		Key:    ev.Key,
		Value:  value,
	})
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafkago.Message{
		Topic: k.topic,
		Key:   []byte(ev.Key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "origin", Value: []byte(k.origin)},
		},
	})
}

// Run mengonsumsi topic relay dan men-dispatch event remote ke bus sampai
// ctx dibatalkan.
func (k *KafkaRelay) Run(ctx context.Context, bus *Bus) {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  k.brokers,
		Topic:    k.topic,
		GroupID:  "directory-relay-" + k.origin,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  500 * time.Millisecond,
	})
	defer reader.Close()

	k.logger.Info("kafka relay started", zap.String("topic", k.topic))

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				k.logger.Info("kafka relay stopped")
				return
			}
			k.logger.Error("kafka relay read failed", zap.Error(err))
			continue
		}

		var wev wireEvent
		if err := json.Unmarshal(msg.Value, &wev); err != nil {
			k.logger.Warn("drop malformed relay payload", zap.Error(err))
			continue
		}
		if wev.Origin == k.origin {
			continue
		}
		bus.Dispatch(wev.Key, wev.Value)
	}
}
