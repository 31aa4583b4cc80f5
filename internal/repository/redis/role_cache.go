package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	roleNamePrefix = "rbac:role:name"
	roleNameTTL    = 10 * time.Minute
)

// RoleCache decorates a RoleRepository with a name-to-record cache. The
// privileged role names are resolved on every guarded request and role
// records never change once created, so a short TTL is plenty.
type RoleCache struct {
	repository.RoleRepository

	client *redis.Client
}

func NewRoleCache(client *redis.Client, inner repository.RoleRepository) *RoleCache {
	return &RoleCache{RoleRepository: inner, client: client}
}

func (c *RoleCache) FindByName(ctx context.Context, name string) (*model.Role, error) {
	key := fmt.Sprintf("%s:%s", roleNamePrefix, name)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var role model.Role
		if jsonErr := json.Unmarshal([]byte(raw), &role); jsonErr == nil {
			return &role, nil
		}
		// 缓存内容损坏，回退数据库
	} else if !errors.Is(err, redis.Nil) {
		// redis故障时退化为直查，不阻断请求
	}

	role, err := c.RoleRepository.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(role); jsonErr == nil {
		c.client.Set(ctx, key, raw, roleNameTTL)
	}
	return role, nil
}
