package biz

import "testing"

func TestLevelOf(t *testing.T) {
	table := NewLevelTable()

	tests := []struct {
		name         string
		xp           int64
		wantLevel    int
		wantLabel    string
		wantNext     int64 // -1 表示已达最高等级
		wantProgress float64
	}{
		{"zero xp", 0, 1, "Newcomer", 50, 0},
		{"just below first threshold", 49, 1, "Newcomer", 50, 98},
		{"exactly at threshold belongs to that level", 50, 2, "Explorer", 150, 0},
		{"mid explorer", 140, 2, "Explorer", 150, 90},
		{"exactly creator", 150, 3, "Creator", 400, 0},
		{"authority", 900, 5, "Authority", 2000, 0},
		{"max level", 2000, 6, "Legend", -1, 100},
		{"beyond max level", 99999, 6, "Legend", -1, 100},
		{"negative clamps to zero", -5, 1, "Newcomer", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := table.LevelOf(tt.xp)
			if v.Level != tt.wantLevel || v.Label != tt.wantLabel {
				t.Errorf("LevelOf(%d) = level %d %q, want level %d %q", tt.xp, v.Level, v.Label, tt.wantLevel, tt.wantLabel)
			}
			if tt.wantNext == -1 {
				if v.NextThreshold != nil {
					t.Errorf("LevelOf(%d).NextThreshold = %d, want nil at max level", tt.xp, *v.NextThreshold)
				}
			} else {
				if v.NextThreshold == nil || *v.NextThreshold != tt.wantNext {
					t.Errorf("LevelOf(%d).NextThreshold = %v, want %d", tt.xp, v.NextThreshold, tt.wantNext)
				}
			}
			if v.Progress != tt.wantProgress {
				t.Errorf("LevelOf(%d).Progress = %v, want %v", tt.xp, v.Progress, tt.wantProgress)
			}
		})
	}
}

func TestLevelOfMonotonic(t *testing.T) {
	table := NewLevelTable()

	prev := 0
	for xp := int64(0); xp <= 2100; xp += 7 {
		lv := table.LevelOf(xp).Level
		if lv < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, lv, xp)
		}
		prev = lv
	}
}

func TestLevelProgressRounding(t *testing.T) {
	table := NewLevelTableWith([]LevelTier{
		{Level: 1, Label: "A", Threshold: 0},
		{Level: 2, Label: "B", Threshold: 3},
	})

	// 1/3 进度应四舍五入到一位小数
	if got := table.LevelOf(1).Progress; got != 33.3 {
		t.Errorf("Progress = %v, want 33.3", got)
	}
	if got := table.LevelOf(2).Progress; got != 66.7 {
		t.Errorf("Progress = %v, want 66.7", got)
	}
}

func TestNewLevelTableWithRejectsBadTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []LevelTier
	}{
		{"empty", nil},
		{"non-increasing thresholds", []LevelTier{
			{Level: 1, Label: "A", Threshold: 0},
			{Level: 2, Label: "B", Threshold: 0},
		}},
		{"non-increasing levels", []LevelTier{
			{Level: 2, Label: "A", Threshold: 0},
			{Level: 1, Label: "B", Threshold: 50},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewLevelTableWith(tt.tiers)
		})
	}
}
