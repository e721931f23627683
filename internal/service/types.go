package service

// 请求/响应结构 (HTTP JSON 编解码)

type GetQuotaRequest struct{}

type ReserveActionRequest struct{}

type ReleaseActionRequest struct{}

// RecordOutcomeRequest 上报动作结果
type RecordOutcomeRequest struct {
	// EventID 事件ID, 为空时由服务端生成
	EventID string `json:"event_id"`
	// Score 本次动作的质量评分 (0-100)
	Score int `json:"score"`
}

type ReleaseActionReply struct {
	Released bool `json:"released"`
}

// QuotaReply 配额状态
type QuotaReply struct {
	PlanID    string `json:"plan_id"`
	Allowed   bool   `json:"allowed"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// LevelReply 等级视图
type LevelReply struct {
	Level         int     `json:"level"`
	Label         string  `json:"label"`
	XP            int64   `json:"xp"`
	NextThreshold *int64  `json:"next_threshold,omitempty"`
	NextLabel     *string `json:"next_label,omitempty"`
	Progress      float64 `json:"progress"`
}

// AchievementReply 成就状态
type AchievementReply struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	XPReward    int64  `json:"xp_reward"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// OutcomeReply 动作结果入账响应
type OutcomeReply struct {
	EventID         string              `json:"event_id"`
	XPAwarded       int64               `json:"xp_awarded"`
	NewAchievements []*AchievementReply `json:"new_achievements"`
	Level           *LevelReply         `json:"level"`
}

type CheckFeatureRequest struct {
	Feature string `json:"feature"`
}

type CheckFeatureReply struct {
	Feature string `json:"feature"`
	PlanID  string `json:"plan_id"`
	Allowed bool   `json:"allowed"`
}

type GetProgressionRequest struct{}

// ProgressionReply 进度总览
type ProgressionReply struct {
	Level        *LevelReply         `json:"level"`
	Achievements []*AchievementReply `json:"achievements"`
}

type ListPlansRequest struct{}

type ListPlansReply struct {
	Plans []*PlanReply `json:"plans"`
}

// PlanReply 套餐信息
type PlanReply struct {
	PlanID                string   `json:"plan_id"`
	Name                  string   `json:"name"`
	DailyActionLimit      int      `json:"daily_action_limit"`
	HistoryRetentionLimit int      `json:"history_retention_limit"`
	Features              []string `json:"features"`
}
