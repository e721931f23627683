package model

import "time"

// ActivityEvent 活动事件模型 (一次已完成的计费动作)
type ActivityEvent struct {
	EventID    string    `gorm:"primaryKey;column:event_id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_user_occurred,priority:1"`
	Kind       string    `gorm:"column:kind;default:'analysis'"`
	Score      int       `gorm:"column:score"`
	OccurredAt time.Time `gorm:"column:occurred_at;index:idx_user_occurred,priority:2"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityEvent) TableName() string { return "activity_event" }
