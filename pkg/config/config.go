// Package config carries the tunable scoring constants and the user-facing
// ranking preferences. The boost/penalty constants were validated against a
// small curated corpus, not a statistical model, so every one of them is a
// viper default that a config file or DEPLOYASSIST_* env var can override.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FrameworkTunables controls the framework detector's category weights and
// score adjustments.
type FrameworkTunables struct {
	WeightDependencies float64 `mapstructure:"weight_dependencies"`
	WeightFiles        float64 `mapstructure:"weight_files"`
	WeightContent      float64 `mapstructure:"weight_content"`
	WeightCommands     float64 `mapstructure:"weight_commands"`

	// Corroboration boost: dependency score above BoostDepThreshold plus a
	// file or content score above BoostSupportThreshold multiplies the
	// combined score by BoostFactor, capped at 1.0.
	BoostFactor           float64 `mapstructure:"boost_factor"`
	BoostDepThreshold     float64 `mapstructure:"boost_dep_threshold"`
	BoostSupportThreshold float64 `mapstructure:"boost_support_threshold"`

	// Weak matches below WeakThreshold are multiplied by WeakPenalty so noise
	// never reaches detected status.
	WeakThreshold float64 `mapstructure:"weak_threshold"`
	WeakPenalty   float64 `mapstructure:"weak_penalty"`
}

// AppTypeTunables controls the application-type detector.
type AppTypeTunables struct {
	WeightFramework float64 `mapstructure:"weight_framework"`
	WeightFiles     float64 `mapstructure:"weight_files"`
	WeightContent   float64 `mapstructure:"weight_content"`

	StrongThreshold float64 `mapstructure:"strong_threshold"`
	StrongBoost     float64 `mapstructure:"strong_boost"`
	WeakThreshold   float64 `mapstructure:"weak_threshold"`
	WeakPenalty     float64 `mapstructure:"weak_penalty"`

	// Full-stack dual-structure rule: full-stack without dual evidence is
	// multiplied by MissingDualPenalty; any other type over a dual-structure
	// corpus is multiplied by DualPenalty.
	MissingDualPenalty float64 `mapstructure:"missing_dual_penalty"`
	DualPenalty        float64 `mapstructure:"dual_penalty"`
}

// InfraTunables controls capability detection thresholds.
type InfraTunables struct {
	StrongBonus       float64 `mapstructure:"strong_bonus"`
	EvidenceFloor     float64 `mapstructure:"evidence_floor"`
	RequiredThreshold float64 `mapstructure:"required_threshold"`
	ReportThreshold   float64 `mapstructure:"report_threshold"`
}

// OverallTunables weights the three stage confidences into one value.
type OverallTunables struct {
	WeightFramework float64 `mapstructure:"weight_framework"`
	WeightAppType   float64 `mapstructure:"weight_app_type"`
	WeightInfra     float64 `mapstructure:"weight_infra"`
}

// RankingTunables carries the six criterion weights and the tier cutoffs.
type RankingTunables struct {
	WeightCost        float64 `mapstructure:"weight_cost"`
	WeightComplexity  float64 `mapstructure:"weight_complexity"`
	WeightScalability float64 `mapstructure:"weight_scalability"`
	WeightReliability float64 `mapstructure:"weight_reliability"`
	WeightPerformance float64 `mapstructure:"weight_performance"`
	WeightMaturity    float64 `mapstructure:"weight_maturity"`

	TierRecommended float64 `mapstructure:"tier_recommended"`
	TierSuitable    float64 `mapstructure:"tier_suitable"`
	TierAcceptable  float64 `mapstructure:"tier_acceptable"`
}

// Tunables is the full scoring configuration.
type Tunables struct {
	Framework FrameworkTunables `mapstructure:"framework"`
	AppType   AppTypeTunables   `mapstructure:"app_type"`
	Infra     InfraTunables     `mapstructure:"infra"`
	Overall   OverallTunables   `mapstructure:"overall"`
	Ranking   RankingTunables   `mapstructure:"ranking"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("framework.weight_dependencies", 0.4)
	v.SetDefault("framework.weight_files", 0.3)
	v.SetDefault("framework.weight_content", 0.2)
	v.SetDefault("framework.weight_commands", 0.1)
	v.SetDefault("framework.boost_factor", 1.5)
	v.SetDefault("framework.boost_dep_threshold", 0.5)
	v.SetDefault("framework.boost_support_threshold", 0.3)
	v.SetDefault("framework.weak_threshold", 0.3)
	v.SetDefault("framework.weak_penalty", 0.5)

	v.SetDefault("app_type.weight_framework", 0.6)
	v.SetDefault("app_type.weight_files", 0.25)
	v.SetDefault("app_type.weight_content", 0.25)
	v.SetDefault("app_type.strong_threshold", 0.7)
	v.SetDefault("app_type.strong_boost", 1.2)
	v.SetDefault("app_type.weak_threshold", 0.3)
	v.SetDefault("app_type.weak_penalty", 0.7)
	v.SetDefault("app_type.missing_dual_penalty", 0.5)
	v.SetDefault("app_type.dual_penalty", 0.3)

	v.SetDefault("infra.strong_bonus", 0.3)
	v.SetDefault("infra.evidence_floor", 0.2)
	v.SetDefault("infra.required_threshold", 0.4)
	v.SetDefault("infra.report_threshold", 0.2)

	v.SetDefault("overall.weight_framework", 0.4)
	v.SetDefault("overall.weight_app_type", 0.3)
	v.SetDefault("overall.weight_infra", 0.3)

	v.SetDefault("ranking.weight_cost", 0.25)
	v.SetDefault("ranking.weight_complexity", 0.20)
	v.SetDefault("ranking.weight_scalability", 0.20)
	v.SetDefault("ranking.weight_reliability", 0.15)
	v.SetDefault("ranking.weight_performance", 0.10)
	v.SetDefault("ranking.weight_maturity", 0.10)
	v.SetDefault("ranking.tier_recommended", 0.8)
	v.SetDefault("ranking.tier_suitable", 0.6)
	v.SetDefault("ranking.tier_acceptable", 0.4)
}

// DefaultTunables returns the built-in scoring constants.
func DefaultTunables() Tunables {
	v := viper.New()
	setDefaults(v)
	var t Tunables
	// Defaults are static; Unmarshal cannot fail on them.
	_ = v.Unmarshal(&t)
	return t
}

// LoadTunables layers overrides from an optional config file and from
// DEPLOYASSIST_* env vars on top of the defaults. A missing default config
// file is fine; an explicitly named file must exist and parse.
func LoadTunables(path string) (Tunables, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("deployassist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Tunables{}, fmt.Errorf("reading tunables %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.deployassist")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Tunables{}, fmt.Errorf("reading tunables: %w", err)
			}
		}
	}

	var t Tunables
	if err := v.Unmarshal(&t); err != nil {
		return Tunables{}, fmt.Errorf("parsing tunables: %w", err)
	}
	return t, nil
}
