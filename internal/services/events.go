package services

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// EventPublisher announces profile changes to anyone watching the
// owner's event stream (the websocket handler forwards them).
type EventPublisher interface {
	ProfileSaved(ctx context.Context, ownerID string)
}

// ProfileEventsChannel is the pub/sub channel carrying one owner's
// profile events.
func ProfileEventsChannel(ownerID string) string {
	return "profile:" + ownerID + ":events"
}

type RedisEvents struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewRedisEvents(rdb *redis.Client, log *logrus.Logger) *RedisEvents {
	return &RedisEvents{rdb: rdb, log: log}
}

func (e *RedisEvents) ProfileSaved(ctx context.Context, ownerID string) {
	payload := `{"type":"profile_saved","user_id":"` + ownerID + `"}`
	if err := e.rdb.Publish(ctx, ProfileEventsChannel(ownerID), payload).Err(); err != nil {
		e.log.WithError(err).WithField("user_id", ownerID).Warn("failed to publish profile event")
	}
}
