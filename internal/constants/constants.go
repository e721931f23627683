package constants

import "time"

// 配额相关常量
const (
	// UnlimitedQuota 无限配额哨兵值
	UnlimitedQuota = -1
	// UnlimitedRetention 无限历史保留哨兵值
	UnlimitedRetention = -1
	// DailyCounterKeyFormat 每日动作计数器的 Redis key 格式: daily_actions:{uid}:{yyyymmdd}
	DailyCounterKeyFormat = "daily_actions:%s:%s"
	// DailyCounterExpiration 每日计数器过期时间 (跨两个 UTC 日, 防止边界误删)
	DailyCounterExpiration = 48 * time.Hour
	// DayKeyLayout 每日计数器 key 的日期格式
	DayKeyLayout = "20060102"
)

// 分布式锁相关常量
const (
	// OutcomeLockKeyFormat 记录动作结果的用户级锁 key 格式
	OutcomeLockKeyFormat = "outcome_lock:user:%s"
	// OutcomeLockExpiration 记录动作结果锁过期时间
	OutcomeLockExpiration = 30 * time.Second
	// OutcomeLockRetries 记录动作结果锁重试次数
	OutcomeLockRetries = 8
)

// 分页相关常量
const (
	// DefaultPageSize 默认分页大小
	DefaultPageSize = 10
	// MaxPageSize 最大分页大小
	MaxPageSize = 100
	// RetentionBatchSize 历史清理时每批处理的用户数
	RetentionBatchSize = 200
)

// 套餐ID
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanCreator = "creator"
	PlanPro     = "pro"
)

// 动作类型
const (
	// ActionAnalysis 内容分析动作
	ActionAnalysis = "analysis"
)
