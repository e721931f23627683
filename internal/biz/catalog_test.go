package biz

import (
	"testing"

	"xinyuan_tech/entitlement-service/internal/constants"
)

func TestParseFeature(t *testing.T) {
	for _, f := range AllFeatures {
		got, ok := ParseFeature(string(f))
		if !ok || got != f {
			t.Errorf("ParseFeature(%q) = (%q, %v), want (%q, true)", f, got, ok, f)
		}
	}

	for _, name := range []string{"", "premium", "deep_insight", "COMPETITOR_ACCESS"} {
		if _, ok := ParseFeature(name); ok {
			t.Errorf("ParseFeature(%q) accepted an unknown feature", name)
		}
	}
}

func TestPlanCatalogLookupFallsBackToDefault(t *testing.T) {
	catalog := NewPlanCatalog()

	def := catalog.Lookup("no-such-plan")
	if def.PlanID != constants.PlanFree {
		t.Errorf("Lookup of unknown plan returned %q, want fallback %q", def.PlanID, constants.PlanFree)
	}
}

func TestDefaultPlanFeatureMatrix(t *testing.T) {
	catalog := NewPlanCatalog()

	tests := []struct {
		planID  string
		feature Feature
		want    bool
	}{
		{constants.PlanFree, FeatureFavorites, false},
		{constants.PlanFree, FeatureCompetitorAccess, false},
		{constants.PlanStarter, FeatureFavorites, true},
		{constants.PlanStarter, FeatureAdvancedInsights, false},
		{constants.PlanCreator, FeatureCompetitorAccess, true},
		{constants.PlanCreator, FeatureAdvancedInsights, true},
		{constants.PlanCreator, FeatureDeepInsights, false},
		{constants.PlanPro, FeatureDeepInsights, true},
	}

	for _, tt := range tests {
		if got := catalog.Lookup(tt.planID).HasFeature(tt.feature); got != tt.want {
			t.Errorf("plan %s feature %s = %v, want %v", tt.planID, tt.feature, got, tt.want)
		}
	}
}

func TestPlanCatalogListKeepsOrder(t *testing.T) {
	catalog := NewPlanCatalog()

	var ids []string
	for _, p := range catalog.List() {
		ids = append(ids, p.PlanID)
	}
	want := []string{constants.PlanFree, constants.PlanStarter, constants.PlanCreator, constants.PlanPro}
	if len(ids) != len(want) {
		t.Fatalf("List() returned %d plans, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestNewPlanCatalogWithMissingDefaultPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when default plan is missing")
		}
	}()
	NewPlanCatalogWith("absent", []PlanDefinition{{PlanID: "other"}})
}
