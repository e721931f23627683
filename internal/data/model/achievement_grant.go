package model

import "time"

// AchievementGrant 成就授予模型
// (user_id, achievement_id) 唯一, 创建后不更新不删除
type AchievementGrant struct {
	ID            uint64    `gorm:"primaryKey;column:achievement_grant_id;autoIncrement"`
	UserID        string    `gorm:"column:user_id;not null;uniqueIndex:uk_user_achievement,priority:1"`
	AchievementID string    `gorm:"column:achievement_id;not null;uniqueIndex:uk_user_achievement,priority:2"`
	GrantedAt     time.Time `gorm:"column:granted_at"`
}

func (AchievementGrant) TableName() string { return "achievement_grant" }
