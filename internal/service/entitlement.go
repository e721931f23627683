package service

import (
	"context"

	"xinyuan_tech/entitlement-service/internal/auth"
	"xinyuan_tech/entitlement-service/internal/biz"

	"github.com/google/uuid"
)

// EntitlementService 权益服务
type EntitlementService struct {
	uc *biz.EntitlementUsecase
}

// NewEntitlementService 创建权益服务实例
func NewEntitlementService(uc *biz.EntitlementUsecase) *EntitlementService {
	return &EntitlementService{uc: uc}
}

// GetQuota 查询当前用户今日配额状态 (只读, 不消耗配额)
func (s *EntitlementService) GetQuota(ctx context.Context, req *GetQuotaRequest) (*QuotaReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	planID, err := s.uc.PlanOf(ctx, uid)
	if err != nil {
		return nil, err
	}

	result, err := s.uc.AuthorizeAction(ctx, uid, planID)
	if err != nil {
		return nil, err
	}
	return quotaReply(planID, result), nil
}

// ReserveAction 预占一个配额单位
// 调用方在执行动作前预占; 动作失败或放弃时必须调用 ReleaseAction 归还
func (s *EntitlementService) ReserveAction(ctx context.Context, req *ReserveActionRequest) (*QuotaReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	planID, err := s.uc.PlanOf(ctx, uid)
	if err != nil {
		return nil, err
	}

	result, err := s.uc.ReserveAction(ctx, uid, planID)
	if err != nil {
		return nil, err
	}
	return quotaReply(planID, result), nil
}

// ReleaseAction 归还一次预占的配额
func (s *EntitlementService) ReleaseAction(ctx context.Context, req *ReleaseActionRequest) (*ReleaseActionReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uc.ReleaseAction(ctx, uid); err != nil {
		return nil, err
	}
	return &ReleaseActionReply{Released: true}, nil
}

// RecordOutcome 上报一次已完成动作的结果
// 返回本次发放的经验, 新解锁的成就和入账后的等级视图
func (s *EntitlementService) RecordOutcome(ctx context.Context, req *RecordOutcomeRequest) (*OutcomeReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	eventID := req.EventID
	if eventID == "" {
		eventID = "ev_" + uuid.New().String()
	}

	result, err := s.uc.RecordAction(ctx, uid, eventID, req.Score)
	if err != nil {
		return nil, err
	}

	reply := &OutcomeReply{
		EventID:         eventID,
		XPAwarded:       result.XPAwarded,
		NewAchievements: make([]*AchievementReply, 0, len(result.NewAchievements)),
		Level:           levelReply(result.Level),
	}
	for _, id := range result.NewAchievements {
		if def, ok := s.uc.AchievementCatalog().Get(id); ok {
			reply.NewAchievements = append(reply.NewAchievements, achievementReply(def, true))
		}
	}
	return reply, nil
}

// CheckFeature 查询当前用户套餐是否开启指定功能
func (s *EntitlementService) CheckFeature(ctx context.Context, req *CheckFeatureRequest) (*CheckFeatureReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	planID, err := s.uc.PlanOf(ctx, uid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.uc.FeatureAllowed(planID, req.Feature)
	if err != nil {
		return nil, err
	}
	return &CheckFeatureReply{
		Feature: req.Feature,
		PlanID:  planID,
		Allowed: allowed,
	}, nil
}

// GetProgression 返回当前用户的等级视图与全部成就状态
func (s *EntitlementService) GetProgression(ctx context.Context, req *GetProgressionRequest) (*ProgressionReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	level, err := s.uc.Progression(ctx, uid)
	if err != nil {
		return nil, err
	}

	grantedIDs, err := s.uc.GrantedAchievements(ctx, uid)
	if err != nil {
		return nil, err
	}
	granted := make(map[string]bool, len(grantedIDs))
	for _, id := range grantedIDs {
		granted[id] = true
	}

	defs := s.uc.AchievementCatalog().Ordered()
	achievements := make([]*AchievementReply, 0, len(defs))
	for _, def := range defs {
		achievements = append(achievements, achievementReply(def, granted[def.ID]))
	}

	return &ProgressionReply{
		Level:        levelReply(level),
		Achievements: achievements,
	}, nil
}

// ListPlans 返回套餐目录
func (s *EntitlementService) ListPlans(ctx context.Context, req *ListPlansRequest) (*ListPlansReply, error) {
	defs := s.uc.Catalog().List()
	plans := make([]*PlanReply, 0, len(defs))
	for _, def := range defs {
		features := make([]string, 0, len(def.Features))
		for _, f := range biz.AllFeatures {
			if def.Features[f] {
				features = append(features, string(f))
			}
		}
		plans = append(plans, &PlanReply{
			PlanID:                def.PlanID,
			Name:                  def.Name,
			DailyActionLimit:      def.DailyActionLimit,
			HistoryRetentionLimit: def.HistoryRetentionLimit,
			Features:              features,
		})
	}
	return &ListPlansReply{Plans: plans}, nil
}

func quotaReply(planID string, r *biz.AuthorizationResult) *QuotaReply {
	return &QuotaReply{
		PlanID:    planID,
		Allowed:   r.Allowed,
		Limit:     r.Limit,
		Used:      r.Used,
		Remaining: r.Remaining,
	}
}

func levelReply(v biz.LevelView) *LevelReply {
	return &LevelReply{
		Level:         v.Level,
		Label:         v.Label,
		XP:            v.XP,
		NextThreshold: v.NextThreshold,
		NextLabel:     v.NextLabel,
		Progress:      v.Progress,
	}
}

func achievementReply(def biz.AchievementDefinition, earned bool) *AchievementReply {
	return &AchievementReply{
		ID:          def.ID,
		Label:       def.Label,
		Description: def.Description,
		XPReward:    def.XPReward,
		Icon:        def.Icon,
		Earned:      earned,
	}
}
