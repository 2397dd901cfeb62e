package app

import (
	"context"
	"os"
	"strings"
	"time"

	"go-employee/internal/eventbus"
	"go-employee/internal/events"
	"go-employee/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp membangun seluruh dependency (DB, Redis, relay bus) lalu
// mendaftarkan route. Relay berjalan sampai ctx dibatalkan.
func BuildApp(ctx context.Context, router *gin.Engine) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORM(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		30*time.Second,
	)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}
	if err := seed(ctx, gormDB); err != nil {
		return err
	}

	// Redis opsional: dipakai cache divisi dan relay bus lintas proses
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedis(addr, 30*time.Second)
		if err != nil {
			return err
		}
	}

	var busOpts []eventbus.Option
	busOpts = append(busOpts, eventbus.WithLogger(logger))

	var redisRelay *eventbus.RedisRelay
	if rdb != nil {
		redisRelay = eventbus.NewRedisRelay(rdb, logger)
		busOpts = append(busOpts, eventbus.WithRelay(redisRelay))
	}

	// Kafka opsional: relay kedua untuk topologi tanpa Redis
	var kafkaRelay *eventbus.KafkaRelay
	if brokerList := os.Getenv("KAFKA_BROKERS"); brokerList != "" {
		brokers := strings.Split(brokerList, ",")
		writer := connection.NewKafkaWriter(brokers)
		kafkaRelay = eventbus.NewKafkaRelay(writer, brokers, events.ChangeTopic, logger)
		busOpts = append(busOpts, eventbus.WithRelay(kafkaRelay))
	}

	bus := eventbus.New(busOpts...)

	if redisRelay != nil {
		go redisRelay.Run(ctx, bus)
	}
	if kafkaRelay != nil {
		go kafkaRelay.Run(ctx, bus)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	registerModules(router, sqlDB, gormDB, rdb, bus, logger)
	return nil
}
