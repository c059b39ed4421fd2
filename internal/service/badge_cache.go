package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Redis key prefixes for notification badges
	RedisDoctorPendingKeyPrefix  = "badge:doctor:pending:"
	RedisPatientDecidedKeyPrefix = "badge:patient:decided:"

	// Timeout for individual Redis operations
	redisBadgeTimeout = 2 * time.Second

	// Batch size for warm-up; the pipeline is executed per batch
	warmBatchSize = 500
)

// =============================================================================
// Types
// =============================================================================

// BadgeCache stores the small counters shown as notification badges.
// A miss is not an error: callers fall back to the database.
type BadgeCache interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, value int64) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisBadgeCache is the Redis backed BadgeCache.
type RedisBadgeCache struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

// NewRedisBadgeCache creates a badge cache whose entries expire after ttl.
func NewRedisBadgeCache(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisBadgeCache {
	return &RedisBadgeCache{
		db:          db,
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func DoctorPendingKey(doctorID int64) string {
	return fmt.Sprintf("%s%d", RedisDoctorPendingKeyPrefix, doctorID)
}

func PatientDecidedKey(patientID int64) string {
	return fmt.Sprintf("%s%d", RedisPatientDecidedKeyPrefix, patientID)
}

// =============================================================================
// Public Methods
// =============================================================================

func (c *RedisBadgeCache) Get(ctx context.Context, key string) (int64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisBadgeTimeout)
	defer cancel()

	value, err := c.redisClient.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get badge %s: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisBadgeCache) Set(ctx context.Context, key string, value int64) error {
	ctx, cancel := context.WithTimeout(ctx, redisBadgeTimeout)
	defer cancel()

	if err := c.redisClient.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("set badge %s: %w", key, err)
	}
	return nil
}

func (c *RedisBadgeCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisBadgeTimeout)
	defer cancel()

	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate badges: %w", err)
	}
	return nil
}

// pendingCount holds one row of the warm-up aggregate
type pendingCount struct {
	DoctorID int64
	Total    int64
}

// WarmDoctorPendingCounts loads the pending-appointment count of every
// doctor that has one into Redis. Doctors with no pending appointments are
// left to the lazy path.
func (c *RedisBadgeCache) WarmDoctorPendingCounts(ctx context.Context) error {
	c.log.Info("Warming doctor badge counters from database...")
	startTime := time.Now()

	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		c.log.Warnf("Redis is not available, skipping warm-up: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	offset := 0
	totalWarmed := 0

	for {
		var results []pendingCount

		err := c.db.WithContext(ctx).Model(&entity.Appointment{}).
			Select("doctor_id, COUNT(*) AS total").
			Where("status = ?", entity.AppointmentStatusPending).
			Group("doctor_id").
			Order("doctor_id").
			Limit(warmBatchSize).
			Offset(offset).
			Scan(&results).Error
		if err != nil {
			c.log.Errorf("Failed to query pending counts at offset %d: %+v", offset, err)
			return fmt.Errorf("query pending counts at offset %d: %w", offset, err)
		}

		if len(results) == 0 {
			break
		}

		pipe := c.redisClient.TxPipeline()
		for _, result := range results {
			pipe.Set(ctx, DoctorPendingKey(result.DoctorID), result.Total, c.ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalWarmed += len(results)

		if len(results) < warmBatchSize {
			break
		}
		offset += warmBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	c.log.Infof("Badge warm-up completed: %d doctors in %v", totalWarmed, time.Since(startTime))
	return nil
}
