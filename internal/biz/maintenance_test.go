package biz

import (
	"context"
	"testing"

	"xinyuan_tech/entitlement-service/internal/constants"
)

func TestTrimHistoryRespectsRetentionLimits(t *testing.T) {
	env := newTestEnv(
		&UserAccount{UserID: "u1", PlanID: constants.PlanFree}, // 保留 5 条
		&UserAccount{UserID: "u2", PlanID: constants.PlanPro},  // 无限保留
	)
	env.seedEvents("u1", 8)
	env.seedEvents("u2", 8)

	trimmed, err := env.uc.TrimHistory(context.Background())
	if err != nil {
		t.Fatalf("TrimHistory: %v", err)
	}
	if trimmed != 3 {
		t.Errorf("trimmed = %d, want 3", trimmed)
	}

	n, _ := env.acts.CountTotal(context.Background(), "u1")
	if n != 5 {
		t.Errorf("u1 has %d events after trim, want 5", n)
	}
	n, _ = env.acts.CountTotal(context.Background(), "u2")
	if n != 8 {
		t.Errorf("u2 has %d events after trim, want 8 (unlimited retention)", n)
	}
}

func TestReconcileDailyCounters(t *testing.T) {
	env := newTestEnv(
		&UserAccount{UserID: "u1", PlanID: constants.PlanFree},
		&UserAccount{UserID: "u2", PlanID: constants.PlanPro},
	)
	env.seedEvents("u1", 2)
	env.seedEvents("u2", 4)

	// 模拟计数器漂移
	dayKey := DayKeyUTC(env.now)
	env.acts.counters["u1:"+dayKey] = 7

	reconciled, err := env.uc.ReconcileDailyCounters(context.Background(), env.now)
	if err != nil {
		t.Fatalf("ReconcileDailyCounters: %v", err)
	}
	if reconciled != 1 {
		t.Errorf("reconciled = %d, want 1 (unlimited plans are skipped)", reconciled)
	}
	if got := env.acts.counters["u1:"+dayKey]; got != 2 {
		t.Errorf("u1 counter = %d after reconciliation, want 2", got)
	}
	if _, ok := env.acts.counters["u2:"+dayKey]; ok {
		t.Error("u2 counter seeded for an unlimited plan")
	}
}
