package biz

import (
	"context"
	"testing"

	"xinyuan_tech/entitlement-service/internal/constants"
)

func TestDefaultAchievementThresholds(t *testing.T) {
	catalog := NewAchievementCatalog()

	tests := []struct {
		id       string
		counters ActivityCounters
		want     bool
	}{
		{"first_analysis", ActivityCounters{TotalActions: 1}, true},
		{"first_analysis", ActivityCounters{TotalActions: 0}, false},
		{"analysis_10", ActivityCounters{TotalActions: 10}, true},
		{"analysis_10", ActivityCounters{TotalActions: 9}, false},
		{"analysis_25", ActivityCounters{TotalActions: 25}, true},
		{"analysis_25", ActivityCounters{TotalActions: 24}, false},
		{"viral_80", ActivityCounters{TriggerScore: 80}, true},
		{"viral_80", ActivityCounters{TriggerScore: 79}, false},
		{"viral_95", ActivityCounters{TriggerScore: 95}, true},
		{"viral_95", ActivityCounters{TriggerScore: 94}, false},
	}

	for _, tt := range tests {
		def, ok := catalog.Get(tt.id)
		if !ok {
			t.Fatalf("achievement %s missing from catalog", tt.id)
		}
		if got := def.Qualifies(tt.counters); got != tt.want {
			t.Errorf("%s.Qualifies(%+v) = %v, want %v", tt.id, tt.counters, got, tt.want)
		}
	}
}

func TestEvaluateIsIdempotentOnReplay(t *testing.T) {
	env := newTestEnv(&UserAccount{UserID: "u1", PlanID: constants.PlanFree})
	ctx := context.Background()
	counters := ActivityCounters{TotalActions: 1, TriggerScore: 85}

	newIDs, bonus, err := env.uc.Evaluate(ctx, "u1", counters, map[string]bool{})
	if err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	if len(newIDs) != 2 || bonus != 65 {
		t.Fatalf("first Evaluate = (%v, %d), want 2 grants worth 65 XP", newIDs, bonus)
	}

	granted := make(map[string]bool)
	for _, id := range newIDs {
		granted[id] = true
	}
	newIDs, bonus, err = env.uc.Evaluate(ctx, "u1", counters, granted)
	if err != nil {
		t.Fatalf("replay Evaluate: %v", err)
	}
	if len(newIDs) != 0 || bonus != 0 {
		t.Errorf("replay Evaluate = (%v, %d), want no new grants", newIDs, bonus)
	}
	if env.prog.totals["u1"] != 65 {
		t.Errorf("total XP = %d after replay, want 65", env.prog.totals["u1"])
	}
}

func TestEvaluateSkipsRewardWhenInsertLosesRace(t *testing.T) {
	env := newTestEnv(&UserAccount{UserID: "u1", PlanID: constants.PlanFree})
	env.ach.raceIDs = map[string]bool{"first_analysis": true}

	newIDs, bonus, err := env.uc.Evaluate(context.Background(), "u1",
		ActivityCounters{TotalActions: 1, TriggerScore: 50}, map[string]bool{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(newIDs) != 0 || bonus != 0 {
		t.Errorf("Evaluate = (%v, %d), want race loser to skip the reward", newIDs, bonus)
	}
	if env.prog.totals["u1"] != 0 {
		t.Errorf("total XP = %d, want 0 when insert lost the race", env.prog.totals["u1"])
	}
}

func TestNewAchievementCatalogWithRejectsBadDefinitions(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on duplicate id")
			}
		}()
		NewAchievementCatalogWith([]AchievementDefinition{
			{ID: "a", XPReward: 10, qualifies: minTotalActions(1)},
			{ID: "a", XPReward: 20, qualifies: minTotalActions(2)},
		})
	})

	t.Run("non-positive reward", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on non-positive reward")
			}
		}()
		NewAchievementCatalogWith([]AchievementDefinition{
			{ID: "a", XPReward: 0, qualifies: minTotalActions(1)},
		})
	})
}
