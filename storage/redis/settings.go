package redisstore

import (
	"context"
	"errors"

	core "github.com/open-rails/sociallogin/core"
	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "sociallogin:appconfig:"

// Settings stores each namespace as one Redis hash.
type Settings struct {
	rdb *redis.Client
}

func NewSettings(rdb *redis.Client) *Settings { return &Settings{rdb: rdb} }

func (s *Settings) GetValue(ctx context.Context, namespace, key, def string) (string, error) {
	v, err := s.rdb.HGet(ctx, settingsKeyPrefix+namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

func (s *Settings) SetValue(ctx context.Context, namespace, key, value string) error {
	return s.rdb.HSet(ctx, settingsKeyPrefix+namespace, key, value).Err()
}

// SetValues writes all settings in one MULTI/EXEC transaction.
func (s *Settings) SetValues(ctx context.Context, namespace string, settings []core.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	fields := make([]any, 0, 2*len(settings))
	for _, st := range settings {
		fields = append(fields, st.Key, st.Value)
	}
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, settingsKeyPrefix+namespace, fields...)
		return nil
	})
	return err
}
