package data

import (
	"context"

	"xinyuan_tech/entitlement-service/internal/constants"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redsync/redsync/v4"
)

// redsyncLocker 基于 redsync 的用户级互斥锁实现
type redsyncLocker struct {
	rs  *redsync.Redsync
	log *log.Helper
}

// Lock 获取指定 key 的分布式锁
// 同一用户的并发入账请求在这里排队, 抢锁超时由 redsync 重试参数控制
func (l *redsyncLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(
		key,
		redsync.WithExpiry(constants.OutcomeLockExpiration),
		redsync.WithTries(constants.OutcomeLockRetries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			l.log.Warnf("failed to unlock %s: %v", key, err)
		}
	}, nil
}
