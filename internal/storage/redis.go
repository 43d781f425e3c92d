package storage

import (
	"context"
	"fmt"
	"time"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrRedisNotFound 包装redis.Nil，供上层做存在性判断
var ErrRedisNotFound = redis.Nil

// Redis 推荐码预留与分段保存建议锁。
// 注意：这里不做业务数据缓存，MySQL是唯一事实来源
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("为Redis启用OpenTelemetry失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis失败 %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Ping(ctx).Err()
}

// referralReserveTTL 推荐码预留记录的过期时间：只需覆盖一次创建请求的生命周期
func (r *Redis) referralReserveTTL() time.Duration {
	seconds := r.config.ReferralReserveTTLSeconds
	if seconds <= 0 {
		seconds = 300
	}
	return time.Duration(seconds) * time.Second
}

// ReserveReferralCode 以SETNX预留一个候选推荐码，窗口内阻止并发创建请求
// 拿到同一个码。数据库唯一索引仍是最终防线，这里只是减少冲突重试
func (r *Redis) ReserveReferralCode(ctx context.Context, code, studentID string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}
	key := fmt.Sprintf(constants.KeyReferralReserve, code)
	ok, err := r.Client.SetNX(ctx, key, studentID, r.referralReserveTTL()).Result()
	if err != nil {
		return false, fmt.Errorf("预留推荐码失败: %w", err)
	}
	return ok, nil
}

// ReleaseReferralReservation 创建失败时主动释放预留，无需等TTL过期
func (r *Redis) ReleaseReferralReservation(ctx context.Context, code string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	key := fmt.Sprintf(constants.KeyReferralReserve, code)
	return r.Client.Del(ctx, key).Err()
}

// AcquireLock 尝试获取一个分布式锁，返回持有者标识，未获取到时返回空串
func (r *Redis) AcquireLock(ctx context.Context, lockKey string, expiration time.Duration) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis客户端未初始化")
	}
	// 随机持有者标识，释放时校验避免误删他人持有的锁
	lockValue := uuid.NewString()
	ok, err := r.Client.SetNX(ctx, lockKey, lockValue, expiration).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return lockValue, nil
	}
	return "", nil
}

// ReleaseLock 释放一个分布式锁，使用Lua脚本保证原子性
func (r *Redis) ReleaseLock(ctx context.Context, lockKey string, lockValue string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}
	// Lua脚本: 如果key存在且值匹配，则删除key
	script := `
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        else
            return 0
        end
    `
	res, err := r.Client.Eval(ctx, script, []string{lockKey}, lockValue).Result()
	if err != nil {
		return false, err
	}

	if released, ok := res.(int64); ok && released == 1 {
		return true, nil
	}
	return false, nil
}

// SectionLockKey 按(实体类型, 实体ID, 分段名)构造建议锁key
func SectionLockKey(entityKind, entityID, sectionName string) string {
	return fmt.Sprintf(constants.KeySectionSaveLock, entityKind, entityID, sectionName)
}
