package model

import "time"

// User 用户模型 (账号由外部用户服务管理, 这里只读取套餐归属)
type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	PlanID    string    `gorm:"column:plan_id;default:'free'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "user" }
