package model

import "time"

// UserProgression 用户进度模型
// total_experience 只通过原子累加修改, 只增不减
type UserProgression struct {
	UserID          string    `gorm:"primaryKey;column:user_id"`
	TotalExperience int64     `gorm:"column:total_experience;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserProgression) TableName() string { return "user_progression" }
