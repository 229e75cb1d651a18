package redisstore

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

const connectKeyPrefix = "sociallogin:connect:"

// Connections keeps each user's connected logins in a Redis set.
type Connections struct {
	rdb *redis.Client
}

func NewConnections(rdb *redis.Client) *Connections { return &Connections{rdb: rdb} }

func (c *Connections) Connect(ctx context.Context, userID, login string) error {
	return c.rdb.SAdd(ctx, connectKeyPrefix+userID, login).Err()
}

// ConnectedLogins returns the user's logins sorted, since sets are unordered.
func (c *Connections) ConnectedLogins(ctx context.Context, userID string) ([]string, error) {
	logins, err := c.rdb.SMembers(ctx, connectKeyPrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(logins)
	return logins, nil
}

func (c *Connections) DisconnectLogin(ctx context.Context, userID, login string) error {
	return c.rdb.SRem(ctx, connectKeyPrefix+userID, login).Err()
}
