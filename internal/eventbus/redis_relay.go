package eventbus

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisChannel = "directory:change"

// wireEvent adalah amplop event di transport relay. Origin dipakai untuk
// membuang pantulan publish milik proses sendiri.
type wireEvent struct {
	Origin string          `json:"origin"`
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
}

// RedisRelay menyiarkan publish lokal lewat Redis PUB/SUB dan menyuntikkan
// publish dari proses lain ke bus lokal dengan (key, value) yang sama.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	origin  string
	logger  *zap.Logger
}

func NewRedisRelay(rdb *redis.Client, logger *zap.Logger) *RedisRelay {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &RedisRelay{
		rdb:     rdb,
		channel: defaultRedisChannel,
		origin:  uuid.NewString(),
		logger:  l.Named("eventbus.redis"),
	}
}

func (r *RedisRelay) Broadcast(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev.Value)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(wireEvent{
		Origin: r.origin,
		Key:    ev.Key,
		Value:  value,
	})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, payload).Err()
}

// Run mendengarkan channel relay dan men-dispatch event remote ke bus
// sampai ctx dibatalkan. Jalankan di goroutine sendiri.
func (r *RedisRelay) Run(ctx context.Context, bus *Bus) {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	r.logger.Info("redis relay started", zap.String("channel", r.channel))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("redis relay stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				r.logger.Warn("redis relay channel closed")
				return
			}
			r.handleMessage(bus, []byte(msg.Payload))
		}
	}
}

func (r *RedisRelay) handleMessage(bus *Bus, payload []byte) {
	var wev wireEvent
	if err := json.Unmarshal(payload, &wev); err != nil {
		r.logger.Warn("drop malformed relay payload", zap.Error(err))
		return
	}
	if wev.Origin == r.origin {
		// pantulan dari publish sendiri, sudah terkirim lokal
		return
	}
	bus.Dispatch(wev.Key, wev.Value)
}
