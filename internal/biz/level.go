package biz

import (
	"math"
)

// LevelTier 等级里程碑
type LevelTier struct {
	Level int
	Label string
	// Threshold 达到该等级所需的累计经验值
	Threshold int64
}

// LevelView 等级视图 (返回给调用方展示)
type LevelView struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	XP    int64  `json:"xp"`
	// NextThreshold 下一等级所需经验, 已达最高等级时为 nil
	NextThreshold *int64  `json:"next_threshold,omitempty"`
	NextLabel     *string `json:"next_label,omitempty"`
	// Progress 到下一等级的进度百分比, 保留一位小数, 最高等级固定为 100
	Progress float64 `json:"progress"`
}

// LevelTable 等级表, 按阈值升序排列, 启动时构建一次后只读
type LevelTable struct {
	tiers []LevelTier
}

// NewLevelTable 创建默认等级表
func NewLevelTable() *LevelTable {
	return NewLevelTableWith(DefaultLevelTiers())
}

// NewLevelTableWith 使用指定等级序列创建等级表
// 等级与阈值都必须严格递增, 否则视为编程错误
func NewLevelTableWith(tiers []LevelTier) *LevelTable {
	if len(tiers) == 0 {
		panic("level table: at least one tier is required")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Level <= tiers[i-1].Level || tiers[i].Threshold <= tiers[i-1].Threshold {
			panic("level table: tiers must be strictly increasing")
		}
	}
	out := make([]LevelTier, len(tiers))
	copy(out, tiers)
	return &LevelTable{tiers: out}
}

// LevelOf 根据累计经验值计算等级视图
// 经验值恰好等于某阈值时归属该等级, 而不是前一等级
func (t *LevelTable) LevelOf(totalXP int64) LevelView {
	if totalXP < 0 {
		totalXP = 0
	}

	idx := 0
	for i, tier := range t.tiers {
		if totalXP >= tier.Threshold {
			idx = i
		} else {
			break
		}
	}

	cur := t.tiers[idx]
	view := LevelView{
		Level: cur.Level,
		Label: cur.Label,
		XP:    totalXP,
	}

	if idx == len(t.tiers)-1 {
		// 已达最高等级
		view.Progress = 100
		return view
	}

	next := t.tiers[idx+1]
	view.NextThreshold = &next.Threshold
	view.NextLabel = &next.Label

	span := next.Threshold - cur.Threshold
	if span <= 0 {
		view.Progress = 0
		return view
	}
	p := float64(totalXP-cur.Threshold) / float64(span) * 100
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	view.Progress = math.Round(p*10) / 10
	return view
}

// Tiers 返回等级表的只读副本
func (t *LevelTable) Tiers() []LevelTier {
	out := make([]LevelTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// DefaultLevelTiers 默认等级序列
func DefaultLevelTiers() []LevelTier {
	return []LevelTier{
		{Level: 1, Label: "Newcomer", Threshold: 0},
		{Level: 2, Label: "Explorer", Threshold: 50},
		{Level: 3, Label: "Creator", Threshold: 150},
		{Level: 4, Label: "Influencer", Threshold: 400},
		{Level: 5, Label: "Authority", Threshold: 900},
		{Level: 6, Label: "Legend", Threshold: 2000},
	}
}
