package data

import (
	"context"
	stderrors "errors"

	"xinyuan_tech/entitlement-service/internal/biz"
	"xinyuan_tech/entitlement-service/internal/data/model"
	"xinyuan_tech/entitlement-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// userRepo 用户仓库实现
type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo 创建用户仓库
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// GetPlanID 返回用户当前套餐ID
func (r *userRepo) GetPlanID(ctx context.Context, userID string) (string, error) {
	var m model.User
	if err := r.data.DB(ctx).Select("user_id", "plan_id").First(&m, "user_id = ?", userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.ErrUserNotFound(userID)
		}
		r.log.Errorf("Failed to get plan for user %s: %v", userID, err)
		return "", err
	}
	return m.PlanID, nil
}

// ListAccounts 分页列出用户
func (r *userRepo) ListAccounts(ctx context.Context, offset, limit int) ([]*biz.UserAccount, error) {
	var models []model.User
	err := r.data.DB(ctx).
		Order("user_id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		r.log.Errorf("Failed to list accounts: %v", err)
		return nil, err
	}

	accounts := make([]*biz.UserAccount, len(models))
	for i, m := range models {
		accounts[i] = &biz.UserAccount{
			UserID: m.UserID,
			Email:  m.Email,
			Name:   m.Name,
			PlanID: m.PlanID,
		}
	}
	return accounts, nil
}
