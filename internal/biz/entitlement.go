package biz

import (
	"context"
	"fmt"
	"time"

	"xinyuan_tech/entitlement-service/internal/conf"
	"xinyuan_tech/entitlement-service/internal/constants"
	"xinyuan_tech/entitlement-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// UserAccount 用户记录 (只读视角, 账号本身由外部用户服务管理)
type UserAccount struct {
	UserID string
	Email  string
	Name   string
	PlanID string
}

// UserRepo 用户记录仓库接口
type UserRepo interface {
	// GetPlanID 返回用户当前套餐ID, 用户不存在时返回 ErrUserNotFound
	GetPlanID(ctx context.Context, userID string) (string, error)
	// ListAccounts 分页列出用户 (定时任务用)
	ListAccounts(ctx context.Context, offset, limit int) ([]*UserAccount, error)
}

// ActivityEvent 活动事件 (一次已完成的计费动作)
type ActivityEvent struct {
	EventID    string
	UserID     string
	Kind       string
	Score      int
	OccurredAt time.Time
}

// ActivityRepo 活动日志仓库接口
type ActivityRepo interface {
	// CountInWindow 统计 [from, to) 窗口内用户已记录的动作数
	CountInWindow(ctx context.Context, userID string, from, to time.Time) (int, error)
	// CountTotal 统计用户累计动作数
	CountTotal(ctx context.Context, userID string) (int, error)
	// MaxScoreInWindow 返回窗口内的最高评分, 无记录时为 0
	MaxScoreInWindow(ctx context.Context, userID string, from, to time.Time) (int, error)
	// RecordEvent 追加一条活动事件
	RecordEvent(ctx context.Context, ev *ActivityEvent) error
	// TrimHistory 只保留用户最近 keep 条事件, 返回删除条数
	TrimHistory(ctx context.Context, userID string, keep int) (int64, error)

	// ReserveDaily 原子递增用户当日计数器并返回新值 (配额预占)
	ReserveDaily(ctx context.Context, userID, dayKey string) (int64, error)
	// ReleaseDaily 回滚一次预占 (动作未完成或超限)
	ReleaseDaily(ctx context.Context, userID, dayKey string) error
	// SeedDaily 将当日计数器重置为指定值 (对账用)
	SeedDaily(ctx context.Context, userID, dayKey string, count int64) error
}

// Locker 用户级互斥锁 (生产实现为 redsync 分布式锁)
type Locker interface {
	// Lock 获取指定 key 的锁, 返回释放函数
	Lock(ctx context.Context, key string) (func(), error)
}

// AuthorizationResult 动作授权结果
type AuthorizationResult struct {
	Allowed bool
	// Limit 套餐每日上限, -1 表示无限制
	Limit int
	Used  int
	// Remaining 剩余配额, 无限制时为 -1
	Remaining int
}

// OutcomeResult 动作结果入账后的进度变化
type OutcomeResult struct {
	// XPAwarded 本次入账发放的经验总量 (基础经验 + 成就奖励)
	XPAwarded int64
	// NewAchievements 本次新解锁的成就ID (目录顺序)
	NewAchievements []string
	// Level 入账后的等级视图
	Level LevelView
}

// EntitlementUsecase 权益与进度业务逻辑
// 对外只暴露三类操作: 动作授权(含预占), 动作结果入账, 功能开关查询
type EntitlementUsecase struct {
	catalog         *PlanCatalog
	meter           *QuotaMeter
	levels          *LevelTable
	achievements    *AchievementCatalog
	userRepo        UserRepo
	activityRepo    ActivityRepo
	progressionRepo ProgressionRepo
	achievementRepo AchievementRepo
	locker          Locker
	config          *conf.Bootstrap
	log             *log.Helper

	// nowFunc 允许测试注入固定时间, 生产环境为 time.Now
	nowFunc func() time.Time
}

// NewEntitlementUsecase 创建权益业务用例
func NewEntitlementUsecase(
	catalog *PlanCatalog,
	meter *QuotaMeter,
	levels *LevelTable,
	achievements *AchievementCatalog,
	userRepo UserRepo,
	activityRepo ActivityRepo,
	progressionRepo ProgressionRepo,
	achievementRepo AchievementRepo,
	locker Locker,
	config *conf.Bootstrap,
	logger log.Logger,
) *EntitlementUsecase {
	return &EntitlementUsecase{
		catalog:         catalog,
		meter:           meter,
		levels:          levels,
		achievements:    achievements,
		userRepo:        userRepo,
		activityRepo:    activityRepo,
		progressionRepo: progressionRepo,
		achievementRepo: achievementRepo,
		locker:          locker,
		config:          config,
		log:             log.NewHelper(logger),
		nowFunc:         time.Now,
	}
}

func (uc *EntitlementUsecase) now() time.Time {
	return uc.nowFunc()
}

// Catalog 返回套餐目录
func (uc *EntitlementUsecase) Catalog() *PlanCatalog {
	return uc.catalog
}

// AchievementCatalog 返回成就目录
func (uc *EntitlementUsecase) AchievementCatalog() *AchievementCatalog {
	return uc.achievements
}

// PlanOf 解析用户当前套餐ID, 用户记录缺失时回退到兜底套餐
func (uc *EntitlementUsecase) PlanOf(ctx context.Context, userID string) (string, error) {
	planID, err := uc.userRepo.GetPlanID(ctx, userID)
	if err != nil {
		if errors.IsUserNotFound(err) {
			return uc.config.DefaultPlanID(), nil
		}
		return "", err
	}
	return planID, nil
}

// AuthorizeAction 判断用户当前是否允许执行一次计费动作
// 只读决策: 不消耗配额, 不修改任何状态; 被放弃的授权不会留下痕迹
func (uc *EntitlementUsecase) AuthorizeAction(ctx context.Context, userID, planID string) (*AuthorizationResult, error) {
	now := uc.now().UTC()
	used, err := uc.activityRepo.CountInWindow(ctx, userID, DayStartUTC(now), now)
	if err != nil {
		uc.log.Errorf("failed to count today's actions for user %s: %v", userID, err)
		return nil, err
	}

	d := uc.meter.Check(planID, used)
	return authorizationResult(d), nil
}

// ReserveAction 以预占方式消耗一个配额单位 (check 与 consume 合并为单次条件操作)
// 预占成功后动作失败或被放弃时, 调用方必须调用 ReleaseAction 归还配额
// 超限时预占被回滚并返回 ErrQuotaExceeded
func (uc *EntitlementUsecase) ReserveAction(ctx context.Context, userID, planID string) (*AuthorizationResult, error) {
	def := uc.catalog.Lookup(planID)
	if def.DailyActionLimit == constants.UnlimitedQuota {
		return &AuthorizationResult{Allowed: true, Limit: constants.UnlimitedQuota, Remaining: constants.UnlimitedQuota}, nil
	}

	dayKey := DayKeyUTC(uc.now())
	count, err := uc.activityRepo.ReserveDaily(ctx, userID, dayKey)
	if err != nil {
		uc.log.Errorf("failed to reserve daily quota for user %s: %v", userID, err)
		return nil, err
	}

	if count > int64(def.DailyActionLimit) {
		// 预占越界, 立即归还; 两个并发请求同时越界时各自归还, 计数仍然一致
		if rerr := uc.activityRepo.ReleaseDaily(ctx, userID, dayKey); rerr != nil {
			uc.log.Errorf("failed to release over-limit reservation for user %s: %v", userID, rerr)
		}
		used := def.DailyActionLimit
		return &AuthorizationResult{Allowed: false, Limit: def.DailyActionLimit, Used: used},
			errors.ErrQuotaExceeded(def.DailyActionLimit, used)
	}

	used := int(count)
	return &AuthorizationResult{
		Allowed:   true,
		Limit:     def.DailyActionLimit,
		Used:      used,
		Remaining: def.DailyActionLimit - used,
	}, nil
}

// ReleaseAction 归还一次预占的配额 (仅在 ReserveAction 成功后动作未完成时调用)
func (uc *EntitlementUsecase) ReleaseAction(ctx context.Context, userID string) error {
	dayKey := DayKeyUTC(uc.now())
	if err := uc.activityRepo.ReleaseDaily(ctx, userID, dayKey); err != nil {
		uc.log.Errorf("failed to release reservation for user %s: %v", userID, err)
		return err
	}
	return nil
}

// RecordOutcome 将一次已完成动作的结果入账
// counters 必须是事件发生后的活动计数快照, 且每个逻辑事件只入账一次 (调用方契约)
// 同一用户的入账串行执行: 发放基础经验, 评估成就, 返回入账后的等级视图
func (uc *EntitlementUsecase) RecordOutcome(ctx context.Context, userID string, counters ActivityCounters) (*OutcomeResult, error) {
	unlock, err := uc.locker.Lock(ctx, fmt.Sprintf(constants.OutcomeLockKeyFormat, userID))
	if err != nil {
		uc.log.Warnf("failed to acquire outcome lock for user %s: %v", userID, err)
		return nil, errors.ErrConcurrentUpdateConflict()
	}
	defer unlock()

	base := uc.config.BaseActionXP()
	total, err := uc.Award(ctx, userID, base)
	if err != nil {
		return nil, err
	}

	grantedIDs, err := uc.achievementRepo.ListGrantedIDs(ctx, userID)
	if err != nil {
		uc.log.Errorf("failed to list granted achievements for user %s: %v", userID, err)
		return nil, err
	}
	granted := make(map[string]bool, len(grantedIDs))
	for _, id := range grantedIDs {
		granted[id] = true
	}

	newIDs, bonus, err := uc.Evaluate(ctx, userID, counters, granted)
	if err != nil {
		return nil, err
	}
	total += bonus

	return &OutcomeResult{
		XPAwarded:       base + bonus,
		NewAchievements: newIDs,
		Level:           uc.levels.LevelOf(total),
	}, nil
}

// RecordAction 记录一次已完成的动作并入账其进度效果
// 先把事件追加到活动日志, 再以事后快照评估进度; 每个完成的动作只调用一次
func (uc *EntitlementUsecase) RecordAction(ctx context.Context, userID, eventID string, score int) (*OutcomeResult, error) {
	now := uc.now().UTC()
	ev := &ActivityEvent{
		EventID:    eventID,
		UserID:     userID,
		Kind:       constants.ActionAnalysis,
		Score:      score,
		OccurredAt: now,
	}
	if err := uc.activityRepo.RecordEvent(ctx, ev); err != nil {
		uc.log.Errorf("failed to record action for user %s: %v", userID, err)
		return nil, err
	}

	total, err := uc.activityRepo.CountTotal(ctx, userID)
	if err != nil {
		uc.log.Errorf("failed to count total actions for user %s: %v", userID, err)
		return nil, err
	}

	return uc.RecordOutcome(ctx, userID, ActivityCounters{
		TotalActions: total,
		TriggerScore: score,
	})
}

// GrantedAchievements 返回用户已解锁的成就ID集合
func (uc *EntitlementUsecase) GrantedAchievements(ctx context.Context, userID string) ([]string, error) {
	return uc.achievementRepo.ListGrantedIDs(ctx, userID)
}

// FeatureAllowed 查询套餐是否开启指定功能
// 未知功能名属于调用方契约违规, 返回 ErrUnknownFeature 而不是静默 false
func (uc *EntitlementUsecase) FeatureAllowed(planID, featureName string) (bool, error) {
	f, ok := ParseFeature(featureName)
	if !ok {
		return false, errors.ErrUnknownFeature(featureName)
	}
	return uc.catalog.Lookup(planID).HasFeature(f), nil
}

func authorizationResult(d QuotaDecision) *AuthorizationResult {
	r := &AuthorizationResult{
		Allowed: d.Allowed,
		Limit:   d.Limit,
		Used:    d.Used,
	}
	if d.Limit == constants.UnlimitedQuota {
		r.Remaining = constants.UnlimitedQuota
		return r
	}
	if remaining := d.Limit - d.Used; remaining > 0 {
		r.Remaining = remaining
	}
	return r
}
