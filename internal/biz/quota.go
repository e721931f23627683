package biz

import (
	"time"

	"xinyuan_tech/entitlement-service/internal/constants"
)

// QuotaDecision 配额决策结果
type QuotaDecision struct {
	Allowed bool
	// Limit 套餐每日上限, -1 表示无限制
	Limit int
	// Used 今日已完成动作数
	Used int
}

// QuotaMeter 配额决策器
// 纯决策逻辑: 不做任何 I/O, 不返回错误, 今日计数由调用方提供
type QuotaMeter struct {
	catalog *PlanCatalog
}

// NewQuotaMeter 创建配额决策器
func NewQuotaMeter(catalog *PlanCatalog) *QuotaMeter {
	return &QuotaMeter{catalog: catalog}
}

// Check 判断指定套餐下是否还允许执行一次动作
// todayCount 为 [当日UTC零点, now) 窗口内已记录的动作数
// 上限为 0 的套餐禁止一切动作, 不会被当作"无限制"
func (m *QuotaMeter) Check(planID string, todayCount int) QuotaDecision {
	def := m.catalog.Lookup(planID)
	if def.DailyActionLimit == constants.UnlimitedQuota {
		return QuotaDecision{Allowed: true, Limit: constants.UnlimitedQuota, Used: todayCount}
	}
	return QuotaDecision{
		Allowed: todayCount < def.DailyActionLimit,
		Limit:   def.DailyActionLimit,
		Used:    todayCount,
	}
}

// DayStartUTC 返回 t 所在 UTC 日的零点 (配额窗口为 [零点, now) 半开区间)
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKeyUTC 返回 t 所在 UTC 日的计数器 key 片段
func DayKeyUTC(t time.Time) string {
	return t.UTC().Format(constants.DayKeyLayout)
}
