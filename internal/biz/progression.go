package biz

import (
	"context"

	"xinyuan_tech/entitlement-service/internal/errors"
)

// UserProgression 用户进度记录
// total_experience 只增不减, 首次发放时惰性创建
type UserProgression struct {
	UserID          string
	TotalExperience int64
}

// ProgressionRepo 进度账本仓库接口
type ProgressionRepo interface {
	// AwardExperience 原子地累加经验值并返回新的累计值
	// 记录不存在时先创建; 并发累加不得丢失更新
	AwardExperience(ctx context.Context, userID string, amount int64) (int64, error)
	// GetTotalExperience 返回用户累计经验值, 无记录时为 0
	GetTotalExperience(ctx context.Context, userID string) (int64, error)
}

// Award 为用户累加经验值
// amount 必须为正数; 零或负数属于调用方契约违规, 直接拒绝而不是截断,
// 以保证累计经验单调不减
func (uc *EntitlementUsecase) Award(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.ErrInvalidAmount(amount)
	}
	total, err := uc.progressionRepo.AwardExperience(ctx, userID, amount)
	if err != nil {
		uc.log.Errorf("failed to award %d XP to user %s: %v", amount, userID, err)
		return 0, err
	}
	return total, nil
}

// LevelOf 根据累计经验值计算等级视图
func (uc *EntitlementUsecase) LevelOf(totalXP int64) LevelView {
	return uc.levels.LevelOf(totalXP)
}

// Progression 返回用户当前的等级视图
func (uc *EntitlementUsecase) Progression(ctx context.Context, userID string) (LevelView, error) {
	total, err := uc.progressionRepo.GetTotalExperience(ctx, userID)
	if err != nil {
		uc.log.Errorf("failed to get total experience for user %s: %v", userID, err)
		return LevelView{}, err
	}
	return uc.levels.LevelOf(total), nil
}
