package data

import (
	"context"

	"xinyuan_tech/entitlement-service/internal/biz"
	"xinyuan_tech/entitlement-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm/clause"
)

// achievementRepo 成就授予仓库实现
type achievementRepo struct {
	data *Data
	log  *log.Helper
}

// NewAchievementRepo 创建成就授予仓库
func NewAchievementRepo(data *Data, logger log.Logger) biz.AchievementRepo {
	return &achievementRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ListGrantedIDs 返回用户已授予的成就ID集合
func (r *achievementRepo) ListGrantedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.data.DB(ctx).
		Model(&model.AchievementGrant{}).
		Where("user_id = ?", userID).
		Order("granted_at").
		Pluck("achievement_id", &ids).Error
	if err != nil {
		r.log.Errorf("Failed to list granted achievements for user %s: %v", userID, err)
		return nil, err
	}
	return ids, nil
}

// InsertGrant 插入授予记录 (insert-if-absent)
// 唯一索引保证每个 (用户, 成就) 至多一条; 冲突时返回 false 且不报错,
// 调用方据此跳过奖励发放, 并发下不会重复授予
func (r *achievementRepo) InsertGrant(ctx context.Context, grant *biz.AchievementGrant) (bool, error) {
	m := &model.AchievementGrant{
		UserID:        grant.UserID,
		AchievementID: grant.AchievementID,
		GrantedAt:     grant.GrantedAt,
	}
	res := r.data.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		r.log.Errorf("Failed to insert grant %s for user %s: %v", grant.AchievementID, grant.UserID, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
