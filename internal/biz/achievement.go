package biz

import (
	"context"
	"time"
)

// ActivityCounters 用户活动计数快照 (由外部活动日志派生, 不落库)
// 必须是事件发生后的快照, 且每个逻辑事件只能评估一次,
// 否则基于计数的成就判定会被重复推进 — 这是调用方契约, 评估器内部不做去重
type ActivityCounters struct {
	// TotalActions 累计完成的动作数
	TotalActions int
	// TriggerScore 本次触发动作的质量评分 (0-100)
	TriggerScore int
}

// AchievementDefinition 成就定义
type AchievementDefinition struct {
	ID          string
	Label       string
	Description string
	// XPReward 解锁时一次性发放的经验值
	XPReward int64
	Icon     string
	// qualifies 判定谓词, 对活动计数快照求值
	qualifies func(ActivityCounters) bool
}

// Qualifies 判断计数快照是否满足该成就条件
func (d AchievementDefinition) Qualifies(c ActivityCounters) bool {
	return d.qualifies(c)
}

// AchievementGrant 成就授予记录, 每个 (用户, 成就) 至多一条, 创建后不可变
type AchievementGrant struct {
	UserID        string
	AchievementID string
	GrantedAt     time.Time
}

// AchievementCatalog 成就目录, 固定顺序, 启动时构建一次后只读
type AchievementCatalog struct {
	defs []AchievementDefinition
	byID map[string]AchievementDefinition
}

// NewAchievementCatalog 创建默认成就目录
func NewAchievementCatalog() *AchievementCatalog {
	return NewAchievementCatalogWith(DefaultAchievements())
}

// NewAchievementCatalogWith 使用指定成就序列创建目录
func NewAchievementCatalogWith(defs []AchievementDefinition) *AchievementCatalog {
	c := &AchievementCatalog{
		defs: make([]AchievementDefinition, len(defs)),
		byID: make(map[string]AchievementDefinition, len(defs)),
	}
	copy(c.defs, defs)
	for _, d := range defs {
		if d.XPReward <= 0 {
			panic("achievement catalog: xp reward must be positive: " + d.ID)
		}
		if _, dup := c.byID[d.ID]; dup {
			panic("achievement catalog: duplicate id: " + d.ID)
		}
		c.byID[d.ID] = d
	}
	return c
}

// Ordered 按目录顺序返回所有成就定义
func (c *AchievementCatalog) Ordered() []AchievementDefinition {
	out := make([]AchievementDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Get 根据ID查询成就定义
func (c *AchievementCatalog) Get(id string) (AchievementDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// DefaultAchievements 默认成就表
// 顺序即授予顺序, 保证同一事件解锁多个成就时结果可确定
func DefaultAchievements() []AchievementDefinition {
	return []AchievementDefinition{
		{
			ID:          "first_analysis",
			Label:       "First Analysis",
			Description: "Complete your first content analysis",
			XPReward:    25,
			Icon:        "🎯",
			qualifies:   minTotalActions(1),
		},
		{
			ID:          "analysis_10",
			Label:       "Getting Serious",
			Description: "Complete 10 content analyses",
			XPReward:    50,
			Icon:        "📈",
			qualifies:   minTotalActions(10),
		},
		{
			ID:          "analysis_25",
			Label:       "Analysis Veteran",
			Description: "Complete 25 content analyses",
			XPReward:    100,
			Icon:        "🏆",
			qualifies:   minTotalActions(25),
		},
		{
			ID:          "viral_80",
			Label:       "Viral Potential",
			Description: "Score 80 or higher on a content analysis",
			XPReward:    40,
			Icon:        "🔥",
			qualifies:   minTriggerScore(80),
		},
		{
			ID:          "viral_95",
			Label:       "Viral Hit",
			Description: "Score 95 or higher on a content analysis",
			XPReward:    75,
			Icon:        "🚀",
			qualifies:   minTriggerScore(95),
		},
	}
}

func minTotalActions(n int) func(ActivityCounters) bool {
	return func(c ActivityCounters) bool { return c.TotalActions >= n }
}

func minTriggerScore(n int) func(ActivityCounters) bool {
	return func(c ActivityCounters) bool { return c.TriggerScore >= n }
}

// AchievementRepo 成就授予仓库接口
type AchievementRepo interface {
	// ListGrantedIDs 返回用户已授予的成就ID集合
	ListGrantedIDs(ctx context.Context, userID string) ([]string, error)
	// InsertGrant 插入授予记录, (user_id, achievement_id) 唯一
	// 已存在时返回 false 且不报错 (insert-if-absent)
	InsertGrant(ctx context.Context, grant *AchievementGrant) (bool, error)
}

// Evaluate 评估并授予新达成的成就
// 按目录顺序检查每个谓词; 已在 granted 中的成就不再评估;
// 新达成的成就写入授予记录并通过进度账本发放奖励经验,
// 插入竞争失败 (并发下已被授予) 时跳过奖励, 保证不会重复发放
// 返回本次新授予的成就ID (目录顺序) 和奖励经验总和
func (uc *EntitlementUsecase) Evaluate(ctx context.Context, userID string, counters ActivityCounters, granted map[string]bool) ([]string, int64, error) {
	newIDs := make([]string, 0, 2)
	var bonus int64

	now := uc.now().UTC()
	for _, def := range uc.achievements.Ordered() {
		if granted[def.ID] {
			continue
		}
		if !def.Qualifies(counters) {
			continue
		}

		inserted, err := uc.achievementRepo.InsertGrant(ctx, &AchievementGrant{
			UserID:        userID,
			AchievementID: def.ID,
			GrantedAt:     now,
		})
		if err != nil {
			return newIDs, bonus, err
		}
		if !inserted {
			// 并发请求已授予, 跳过奖励
			uc.log.Infof("achievement %s already granted to user %s, skipping reward", def.ID, userID)
			continue
		}

		if _, err := uc.progressionRepo.AwardExperience(ctx, userID, def.XPReward); err != nil {
			return newIDs, bonus, err
		}
		newIDs = append(newIDs, def.ID)
		bonus += def.XPReward
		uc.log.Infof("granted achievement %s to user %s (+%d XP)", def.ID, userID, def.XPReward)
	}

	return newIDs, bonus, nil
}
