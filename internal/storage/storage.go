package storage

import (
	"context"
	"errors"
	"fmt"

	"careplus/internal/config"
	"careplus/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound клиника или день очереди не найдены.
var ErrNotFound = errors.New("storage: not found")

// DayKey очередь одной клиники за один календарный день.
type DayKey struct {
	ClinicID string
	Day      string
}

func (k DayKey) String() string { return k.ClinicID + "/" + k.Day }

// ConnectDatabase открывает пул соединений с PostgreSQL.
func ConnectDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("database connected", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// Migrate создаёт или обновляет таблицы.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Clinic{}, &models.QueueDay{}, &models.QueueEntry{})
}

// CloseDatabase закрывает пул соединений.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRedisClient создаёт клиента Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

var errAlreadyClosed = errors.New("storage: queue day already closed")
