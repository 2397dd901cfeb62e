package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectGORM membuka koneksi Postgres lewat GORM dengan retry exponential
// backoff, lalu mengeset connection pool.
func ConnectGORM(host, user, password, dbname, port, sslmode string, maxWait time.Duration) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var db *gorm.DB

	operation := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			zap.L().Warn("gorm open failed, retrying", zap.Error(err))
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			zap.L().Warn("db ping failed, retrying", zap.Error(err))
			return err
		}

		// Pool config
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	zap.L().Info("database connection established")
	return db, nil
}

// ConnectRedis membuka koneksi Redis dengan retry backoff.
func ConnectRedis(addr string, maxWait time.Duration) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zap.L().Warn("redis ping failed, retrying", zap.Error(err))
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	zap.L().Info("redis connection established")
	return rdb, nil
}

// NewKafkaWriter membuat writer kafka untuk relay event lintas proses.
// Topic diset per message oleh pemanggil.
func NewKafkaWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
}
