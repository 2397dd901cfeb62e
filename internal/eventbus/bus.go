package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event adalah satu notifikasi perubahan: key menunjuk resource logis
// (mis. koleksi employees), value adalah payload opaque bagi bus.
type Event struct {
	Key   string
	Value any
}

// Handler dipanggil sinkron untuk setiap publish pada key yang di-subscribe.
type Handler func(Event)

// Relay meneruskan publish lokal ke proses lain (Redis pub/sub, Kafka).
// Event yang diterima dari luar disuntikkan kembali lewat Bus.Dispatch.
type Relay interface {
	Broadcast(ctx context.Context, ev Event) error
}

type subscription struct {
	handler Handler
}

// Bus adalah bus notifikasi in-process: delivery sinkron, sesuai urutan
// registrasi, tanpa persistence dan tanpa replay. Subscriber yang mendaftar
// setelah sebuah publish tidak menerima event tersebut.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]*subscription
	relays []Relay
	logger *zap.Logger
}

type Option func(*Bus)

// WithRelay menambahkan transport relay; boleh dipanggil lebih dari sekali.
func WithRelay(r Relay) Option {
	return func(b *Bus) {
		b.relays = append(b.relays, r)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger.Named("eventbus")
		}
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{
		subs:   make(map[string][]*subscription),
		logger: zap.L().Named("eventbus"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe mendaftarkan handler untuk key. Fungsi yang dikembalikan
// melepas registrasi; aman dipanggil lebih dari sekali.
func (b *Bus) Subscribe(key string, handler Handler) func() {
	sub := &subscription{handler: handler}

	b.mu.Lock()
	b.subs[key] = append(b.subs[key], sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[key]
			for i, s := range list {
				if s == sub {
					b.subs[key] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
			if len(b.subs[key]) == 0 {
				delete(b.subs, key)
			}
		})
	}
}

// Publish mengirim event ke semua subscriber key tersebut secara sinkron,
// lalu menyiarkannya lewat relay (best effort).
func (b *Bus) Publish(key string, value any) {
	ev := Event{Key: key, Value: value}
	b.Dispatch(key, value)

	for _, relay := range b.relays {
		if err := relay.Broadcast(context.Background(), ev); err != nil {
			b.logger.Error("relay broadcast failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// Dispatch mengirim event ke subscriber lokal saja. Dipakai relay saat
// menerima event dari proses lain agar tidak terjadi loop broadcast.
func (b *Bus) Dispatch(key string, value any) {
	b.mu.RLock()
	list := b.subs[key]
	snapshot := make([]*subscription, len(list))
	copy(snapshot, list)
	b.mu.RUnlock()

	ev := Event{Key: key, Value: value}
	for _, sub := range snapshot {
		b.deliver(sub, ev)
	}
}

// deliver memanggil satu handler; panic di satu handler tidak boleh
// menggagalkan delivery ke handler lain.
func (b *Bus) deliver(sub *subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber panicked",
				zap.String("key", ev.Key),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handler(ev)
}
