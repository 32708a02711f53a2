package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crediario/credit-engine/internal/domain"
	"github.com/crediario/credit-engine/internal/repository"
	customError "github.com/crediario/credit-engine/pkg/errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// StatusCatalog resolves payment status entries by id. Entries are immutable
// reference data consulted on every payment, so lookups go through a Redis
// read-through cache; cache failures degrade to the repository.
type StatusCatalog struct {
	statusRepo repository.StatusRepository
	redis      *redis.Client
	ttl        time.Duration
	log        *logrus.Logger
}

func NewStatusCatalog(
	statusRepo repository.StatusRepository,
	redisClient *redis.Client,
	ttl time.Duration,
	log *logrus.Logger,
) *StatusCatalog {
	return &StatusCatalog{
		statusRepo: statusRepo,
		redis:      redisClient,
		ttl:        ttl,
		log:        log,
	}
}

func statusCacheKey(id int64) string {
	return fmt.Sprintf("status:%d", id)
}

// GetByID returns the catalog entry for id, or StatusNotFound.
func (c *StatusCatalog) GetByID(ctx context.Context, id int64) (*domain.PaymentStatus, error) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, statusCacheKey(id)).Bytes()
		if err == nil {
			var status domain.PaymentStatus
			if err := json.Unmarshal(data, &status); err == nil {
				return &status, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.log.WithError(customError.WrapCacheError(err)).
				WithField("status_id", id).
				Warn("status cache read failed, falling back to store")
		}
	}

	status, err := c.statusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapStatusNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if c.redis != nil {
		data, err := json.Marshal(status)
		if err == nil {
			if err := c.redis.Set(ctx, statusCacheKey(id), data, c.ttl).Err(); err != nil {
				c.log.WithError(customError.WrapCacheError(err)).
					WithField("status_id", id).
					Warn("status cache write failed")
			}
		}
	}

	return status, nil
}
