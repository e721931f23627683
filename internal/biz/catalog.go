package biz

import (
	"xinyuan_tech/entitlement-service/internal/constants"
)

// Feature 套餐功能开关 (封闭枚举, 边界层必须先解析再查询)
type Feature string

const (
	FeatureCompetitorAccess Feature = "competitor_access"
	FeatureFavorites        Feature = "favorites"
	FeatureAdvancedInsights Feature = "advanced_insights"
	FeatureDeepInsights     Feature = "deep_insights"
)

// AllFeatures 所有合法的功能开关
var AllFeatures = []Feature{
	FeatureCompetitorAccess,
	FeatureFavorites,
	FeatureAdvancedInsights,
	FeatureDeepInsights,
}

// ParseFeature 解析功能开关名称, 非法名称返回 false (调用方必须拒绝, 不能静默当作关闭)
func ParseFeature(name string) (Feature, bool) {
	f := Feature(name)
	for _, known := range AllFeatures {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// PlanDefinition 套餐权益定义
type PlanDefinition struct {
	PlanID string
	Name   string
	// DailyActionLimit 每日动作配额, -1 表示无限制, 0 表示完全禁止
	DailyActionLimit int
	// HistoryRetentionLimit 历史记录保留条数, -1 表示无限制
	HistoryRetentionLimit int
	Features              map[Feature]bool
}

// HasFeature 判断套餐是否开启指定功能
func (d PlanDefinition) HasFeature(f Feature) bool {
	return d.Features[f]
}

// PlanCatalog 套餐目录, 进程启动时构建一次, 之后只读
type PlanCatalog struct {
	plans     map[string]PlanDefinition
	order     []string
	defaultID string
}

// NewPlanCatalog 创建默认套餐目录
func NewPlanCatalog() *PlanCatalog {
	return NewPlanCatalogWith(constants.PlanFree, DefaultPlans())
}

// NewPlanCatalogWith 使用指定套餐集合创建目录 (测试可注入替代目录)
// 兜底套餐必须存在于集合中
func NewPlanCatalogWith(defaultID string, plans []PlanDefinition) *PlanCatalog {
	c := &PlanCatalog{
		plans:     make(map[string]PlanDefinition, len(plans)),
		order:     make([]string, 0, len(plans)),
		defaultID: defaultID,
	}
	for _, p := range plans {
		c.plans[p.PlanID] = p
		c.order = append(c.order, p.PlanID)
	}
	if _, ok := c.plans[defaultID]; !ok {
		panic("plan catalog: default plan missing: " + defaultID)
	}
	return c
}

// Lookup 查询套餐定义, 未知套餐返回兜底套餐 (永不失败)
func (c *PlanCatalog) Lookup(planID string) PlanDefinition {
	if p, ok := c.plans[planID]; ok {
		return p
	}
	return c.plans[c.defaultID]
}

// List 按目录顺序返回所有套餐定义
func (c *PlanCatalog) List() []PlanDefinition {
	out := make([]PlanDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id])
	}
	return out
}

// DefaultPlans 默认套餐表
func DefaultPlans() []PlanDefinition {
	return []PlanDefinition{
		{
			PlanID:                constants.PlanFree,
			Name:                  "Free",
			DailyActionLimit:      3,
			HistoryRetentionLimit: 5,
			Features:              map[Feature]bool{},
		},
		{
			PlanID:                constants.PlanStarter,
			Name:                  "Starter",
			DailyActionLimit:      10,
			HistoryRetentionLimit: 20,
			Features: map[Feature]bool{
				FeatureFavorites: true,
			},
		},
		{
			PlanID:                constants.PlanCreator,
			Name:                  "Creator",
			DailyActionLimit:      50,
			HistoryRetentionLimit: 100,
			Features: map[Feature]bool{
				FeatureFavorites:        true,
				FeatureCompetitorAccess: true,
				FeatureAdvancedInsights: true,
			},
		},
		{
			PlanID:                constants.PlanPro,
			Name:                  "Pro",
			DailyActionLimit:      constants.UnlimitedQuota,
			HistoryRetentionLimit: constants.UnlimitedRetention,
			Features: map[Feature]bool{
				FeatureFavorites:        true,
				FeatureCompetitorAccess: true,
				FeatureAdvancedInsights: true,
				FeatureDeepInsights:     true,
			},
		},
	}
}
