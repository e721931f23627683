package biz

import (
	"context"
	"time"

	"xinyuan_tech/entitlement-service/internal/constants"
)

// TrimHistory 按套餐的历史保留上限清理活动日志 (定时任务调用)
// 无限保留的套餐不清理; 返回删除的事件总数
func (uc *EntitlementUsecase) TrimHistory(ctx context.Context) (int64, error) {
	uc.log.Info("starting history retention trim")

	var trimmed int64
	offset := 0
	for {
		accounts, err := uc.userRepo.ListAccounts(ctx, offset, constants.RetentionBatchSize)
		if err != nil {
			uc.log.Errorf("failed to list accounts at offset %d: %v", offset, err)
			return trimmed, err
		}
		if len(accounts) == 0 {
			break
		}

		for _, acct := range accounts {
			def := uc.catalog.Lookup(acct.PlanID)
			if def.HistoryRetentionLimit == constants.UnlimitedRetention {
				continue
			}
			n, err := uc.activityRepo.TrimHistory(ctx, acct.UserID, def.HistoryRetentionLimit)
			if err != nil {
				uc.log.Errorf("failed to trim history for user %s: %v", acct.UserID, err)
				continue
			}
			trimmed += n
		}

		offset += len(accounts)
	}

	uc.log.Infof("history retention trim completed: %d events removed", trimmed)
	return trimmed, nil
}

// ReconcileDailyCounters 用活动日志重建指定 UTC 日的预占计数器 (对账)
// Redis 计数器与事件日志可能因进程崩溃产生偏差, 定时任务以日志为准修正
func (uc *EntitlementUsecase) ReconcileDailyCounters(ctx context.Context, day time.Time) (int, error) {
	from := DayStartUTC(day)
	to := from.Add(24 * time.Hour)
	dayKey := DayKeyUTC(day)

	uc.log.Infof("reconciling daily counters for %s", dayKey)

	reconciled := 0
	offset := 0
	for {
		accounts, err := uc.userRepo.ListAccounts(ctx, offset, constants.RetentionBatchSize)
		if err != nil {
			uc.log.Errorf("failed to list accounts at offset %d: %v", offset, err)
			return reconciled, err
		}
		if len(accounts) == 0 {
			break
		}

		for _, acct := range accounts {
			// 无限制套餐不走计数器
			if uc.catalog.Lookup(acct.PlanID).DailyActionLimit == constants.UnlimitedQuota {
				continue
			}
			count, err := uc.activityRepo.CountInWindow(ctx, acct.UserID, from, to)
			if err != nil {
				uc.log.Errorf("failed to count actions for user %s: %v", acct.UserID, err)
				continue
			}
			if err := uc.activityRepo.SeedDaily(ctx, acct.UserID, dayKey, int64(count)); err != nil {
				uc.log.Errorf("failed to seed counter for user %s: %v", acct.UserID, err)
				continue
			}
			reconciled++
		}

		offset += len(accounts)
	}

	uc.log.Infof("daily counter reconciliation completed: %d users", reconciled)
	return reconciled, nil
}
