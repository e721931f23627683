package data

import (
	"context"
	stderrors "errors"

	"xinyuan_tech/entitlement-service/internal/biz"
	"xinyuan_tech/entitlement-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// progressionRepo 进度账本仓库实现
type progressionRepo struct {
	data *Data
	log  *log.Helper
}

// NewProgressionRepo 创建进度账本仓库
func NewProgressionRepo(data *Data, logger log.Logger) biz.ProgressionRepo {
	return &progressionRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// AwardExperience 原子地累加经验值并返回新的累计值
// 整个序列在一个事务内: 惰性建行 → SQL 级自增 → 读回新值
// 自增发生在数据库侧, 并发请求由行锁串行化, 不会丢失更新
func (r *progressionRepo) AwardExperience(ctx context.Context, userID string, amount int64) (int64, error) {
	var total int64
	err := r.data.Exec(ctx, func(ctx context.Context) error {
		db := r.data.DB(ctx)

		// 首次发放时创建记录, 已存在则忽略
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserProgression{UserID: userID, TotalExperience: 0}).Error; err != nil {
			return err
		}

		if err := db.Model(&model.UserProgression{}).
			Where("user_id = ?", userID).
			Update("total_experience", gorm.Expr("total_experience + ?", amount)).Error; err != nil {
			return err
		}

		var m model.UserProgression
		if err := db.First(&m, "user_id = ?", userID).Error; err != nil {
			return err
		}
		total = m.TotalExperience
		return nil
	})
	if err != nil {
		r.log.Errorf("Failed to award %d XP to user %s: %v", amount, userID, err)
		return 0, err
	}
	return total, nil
}

// GetTotalExperience 返回用户累计经验值, 无记录时为 0
func (r *progressionRepo) GetTotalExperience(ctx context.Context, userID string) (int64, error) {
	var m model.UserProgression
	if err := r.data.DB(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.log.Errorf("Failed to get total experience for user %s: %v", userID, err)
		return 0, err
	}
	return m.TotalExperience, nil
}
