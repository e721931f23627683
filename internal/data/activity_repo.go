package data

import (
	"context"
	"fmt"
	"time"

	"xinyuan_tech/entitlement-service/internal/biz"
	"xinyuan_tech/entitlement-service/internal/constants"
	"xinyuan_tech/entitlement-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
)

// activityRepo 活动日志仓库实现
// 事件本体存 MySQL; 每日预占计数器存 Redis (原子 INCR/DECR)
type activityRepo struct {
	data *Data
	log  *log.Helper
}

// NewActivityRepo 创建活动日志仓库
func NewActivityRepo(data *Data, logger log.Logger) biz.ActivityRepo {
	return &activityRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// CountInWindow 统计 [from, to) 窗口内用户已记录的动作数
func (r *activityRepo) CountInWindow(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var count int64
	err := r.data.DB(ctx).
		Model(&model.ActivityEvent{}).
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, from, to).
		Count(&count).Error
	if err != nil {
		r.log.Errorf("Failed to count actions in window for user %s: %v", userID, err)
		return 0, err
	}
	return int(count), nil
}

// CountTotal 统计用户累计动作数
func (r *activityRepo) CountTotal(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.data.DB(ctx).
		Model(&model.ActivityEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		r.log.Errorf("Failed to count total actions for user %s: %v", userID, err)
		return 0, err
	}
	return int(count), nil
}

// MaxScoreInWindow 返回窗口内的最高评分, 无记录时为 0
func (r *activityRepo) MaxScoreInWindow(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var maxScore *int
	err := r.data.DB(ctx).
		Model(&model.ActivityEvent{}).
		Select("MAX(score)").
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, from, to).
		Scan(&maxScore).Error
	if err != nil {
		r.log.Errorf("Failed to get max score for user %s: %v", userID, err)
		return 0, err
	}
	if maxScore == nil {
		return 0, nil
	}
	return *maxScore, nil
}

// RecordEvent 追加一条活动事件
func (r *activityRepo) RecordEvent(ctx context.Context, ev *biz.ActivityEvent) error {
	m := &model.ActivityEvent{
		EventID:    ev.EventID,
		UserID:     ev.UserID,
		Kind:       ev.Kind,
		Score:      ev.Score,
		OccurredAt: ev.OccurredAt,
	}
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to record event for user %s: %v", ev.UserID, err)
		return err
	}
	return nil
}

// TrimHistory 只保留用户最近 keep 条事件
func (r *activityRepo) TrimHistory(ctx context.Context, userID string, keep int) (int64, error) {
	if keep < 0 {
		return 0, nil
	}

	// 找出第 keep 条 (按时间倒序) 的时间戳, 删除更早的事件
	var cutoff []time.Time
	err := r.data.DB(ctx).
		Model(&model.ActivityEvent{}).
		Select("occurred_at").
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Offset(keep).
		Limit(1).
		Pluck("occurred_at", &cutoff).Error
	if err != nil {
		r.log.Errorf("Failed to find trim cutoff for user %s: %v", userID, err)
		return 0, err
	}
	if len(cutoff) == 0 {
		// 事件数未超过保留上限
		return 0, nil
	}

	res := r.data.DB(ctx).
		Where("user_id = ? AND occurred_at <= ?", userID, cutoff[0]).
		Delete(&model.ActivityEvent{})
	if res.Error != nil {
		r.log.Errorf("Failed to trim history for user %s: %v", userID, res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ReserveDaily 原子递增用户当日计数器并返回新值
func (r *activityRepo) ReserveDaily(ctx context.Context, userID, dayKey string) (int64, error) {
	key := dailyCounterKey(userID, dayKey)
	count, err := r.data.rdb.Incr(ctx, key).Result()
	if err != nil {
		r.log.Errorf("Failed to reserve daily quota for user %s: %v", userID, err)
		return 0, err
	}
	if count == 1 {
		// 首次写入时设置过期, 计数器在日期翻转后自然淘汰
		if err := r.data.rdb.Expire(ctx, key, constants.DailyCounterExpiration).Err(); err != nil {
			r.log.Warnf("Failed to set expiry on %s: %v", key, err)
		}
	}
	return count, nil
}

// ReleaseDaily 回滚一次预占
func (r *activityRepo) ReleaseDaily(ctx context.Context, userID, dayKey string) error {
	key := dailyCounterKey(userID, dayKey)
	count, err := r.data.rdb.Decr(ctx, key).Result()
	if err != nil {
		r.log.Errorf("Failed to release daily quota for user %s: %v", userID, err)
		return err
	}
	if count < 0 {
		// 重复归还或对账清零后的归还, 修正为 0
		r.log.Warnf("daily counter for user %s went negative, resetting to 0", userID)
		return r.data.rdb.Set(ctx, key, 0, constants.DailyCounterExpiration).Err()
	}
	return nil
}

// SeedDaily 将当日计数器重置为指定值 (对账用)
func (r *activityRepo) SeedDaily(ctx context.Context, userID, dayKey string, count int64) error {
	key := dailyCounterKey(userID, dayKey)
	if err := r.data.rdb.Set(ctx, key, count, constants.DailyCounterExpiration).Err(); err != nil {
		r.log.Errorf("Failed to seed daily counter for user %s: %v", userID, err)
		return err
	}
	return nil
}

func dailyCounterKey(userID, dayKey string) string {
	return fmt.Sprintf(constants.DailyCounterKeyFormat, userID, dayKey)
}
