package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

func TestDefaultTunables(t *testing.T) {
	tun := config.DefaultTunables()

	if got := tun.Framework.WeightDependencies; got != 0.4 {
		t.Errorf("framework dependency weight = %v, want 0.4", got)
	}
	if sum := tun.Framework.WeightDependencies + tun.Framework.WeightFiles + tun.Framework.WeightContent + tun.Framework.WeightCommands; math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("framework category weights sum to %v, want 1.0", sum)
	}
	if tun.Infra.RequiredThreshold <= tun.Infra.ReportThreshold {
		t.Error("required threshold must sit above the report threshold")
	}
	if sum := tun.Ranking.WeightCost + tun.Ranking.WeightComplexity + tun.Ranking.WeightScalability +
		tun.Ranking.WeightReliability + tun.Ranking.WeightPerformance + tun.Ranking.WeightMaturity; math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("ranking weights sum to %v, want 1.0", sum)
	}
	if !(tun.Ranking.TierRecommended > tun.Ranking.TierSuitable && tun.Ranking.TierSuitable > tun.Ranking.TierAcceptable) {
		t.Errorf("tier cutoffs out of order: %+v", tun.Ranking)
	}
}

func TestLoadTunablesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "framework:\n  weight_dependencies: 0.5\nranking:\n  tier_recommended: 0.85\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	tun, err := config.LoadTunables(path)
	if err != nil {
		t.Fatalf("LoadTunables: %v", err)
	}
	if tun.Framework.WeightDependencies != 0.5 {
		t.Errorf("override not applied: %v", tun.Framework.WeightDependencies)
	}
	if tun.Ranking.TierRecommended != 0.85 {
		t.Errorf("override not applied: %v", tun.Ranking.TierRecommended)
	}
	// Untouched keys keep their defaults.
	if tun.Framework.WeightFiles != 0.3 {
		t.Errorf("default lost: %v", tun.Framework.WeightFiles)
	}
}

func TestLoadTunablesMissingExplicitFile(t *testing.T) {
	if _, err := config.LoadTunables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicitly named config file must exist")
	}
}

func TestPreferencesNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   config.Preferences
		want config.Preferences
	}{
		{
			name: "zero value fills defaults",
			in:   config.Preferences{},
			want: config.Preferences{Priority: config.PriorityBalanced, ComplexityTolerance: 3, PerformanceLevel: "medium"},
		},
		{
			name: "tolerance clamped high",
			in:   config.Preferences{Priority: config.PriorityCost, ComplexityTolerance: 9, PerformanceLevel: "high"},
			want: config.Preferences{Priority: config.PriorityCost, ComplexityTolerance: 5, PerformanceLevel: "high"},
		},
		{
			name: "tolerance clamped low",
			in:   config.Preferences{Priority: config.PrioritySimplicity, ComplexityTolerance: -2, PerformanceLevel: "low"},
			want: config.Preferences{Priority: config.PrioritySimplicity, ComplexityTolerance: 1, PerformanceLevel: "low"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRequirementsNormalize(t *testing.T) {
	r := config.Requirements{}.Normalize()
	if r.Traffic != config.TrafficMedium {
		t.Errorf("traffic = %q, want medium", r.Traffic)
	}
	r = config.Requirements{Traffic: config.TrafficHigh, BudgetMonthly: 100}.Normalize()
	if r.Traffic != config.TrafficHigh || r.BudgetMonthly != 100 {
		t.Errorf("explicit values must survive: %+v", r)
	}
}
