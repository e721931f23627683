package biz

import (
	"testing"
	"time"

	"xinyuan_tech/entitlement-service/internal/constants"
)

func TestQuotaMeterCheck(t *testing.T) {
	meter := NewQuotaMeter(NewPlanCatalog())

	tests := []struct {
		name        string
		planID      string
		todayCount  int
		wantAllowed bool
		wantLimit   int
	}{
		{"free plan under limit", constants.PlanFree, 2, true, 3},
		{"free plan at limit", constants.PlanFree, 3, false, 3},
		{"free plan over limit", constants.PlanFree, 10, false, 3},
		{"starter plan under limit", constants.PlanStarter, 9, true, 10},
		{"starter plan at limit", constants.PlanStarter, 10, false, 10},
		{"pro plan unlimited", constants.PlanPro, 100000, true, constants.UnlimitedQuota},
		{"unknown plan falls back to free", "ghost", 3, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := meter.Check(tt.planID, tt.todayCount)
			if d.Allowed != tt.wantAllowed {
				t.Errorf("Check(%s, %d).Allowed = %v, want %v", tt.planID, tt.todayCount, d.Allowed, tt.wantAllowed)
			}
			if d.Limit != tt.wantLimit {
				t.Errorf("Check(%s, %d).Limit = %d, want %d", tt.planID, tt.todayCount, d.Limit, tt.wantLimit)
			}
			if d.Used != tt.todayCount {
				t.Errorf("Check(%s, %d).Used = %d, want %d", tt.planID, tt.todayCount, d.Used, tt.todayCount)
			}
		})
	}
}

func TestQuotaMeterZeroLimitBlocksEverything(t *testing.T) {
	catalog := NewPlanCatalogWith("blocked", []PlanDefinition{
		{PlanID: "blocked", Name: "Blocked", DailyActionLimit: 0, HistoryRetentionLimit: 0},
	})
	meter := NewQuotaMeter(catalog)

	d := meter.Check("blocked", 0)
	if d.Allowed {
		t.Error("limit 0 must block all actions, not act as unlimited")
	}
}

func TestDayStartUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 本地 2026-03-01 02:30 对应 UTC 2026-02-28 18:30
	local := time.Date(2026, 3, 1, 2, 30, 0, 0, loc)

	got := DayStartUTC(local)
	want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayStartUTC(%v) = %v, want %v", local, got, want)
	}

	if key := DayKeyUTC(local); key != "20260228" {
		t.Errorf("DayKeyUTC(%v) = %q, want %q", local, key, "20260228")
	}
}
