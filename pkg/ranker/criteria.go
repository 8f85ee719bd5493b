package ranker

import (
	"fmt"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

// neutralScore is the fallback when a service definition lacks the fields a
// criterion needs; an incomplete definition never fails the ranking pass.
const neutralScore = 0.5

var trafficMultiplier = map[string]float64{
	config.TrafficLow:    1,
	config.TrafficMedium: 2,
	config.TrafficHigh:   4,
}

// minScalability is the rating a traffic tier demands before the scalability
// criterion stops penalizing.
var minScalability = map[string]int{
	config.TrafficLow:    3,
	config.TrafficMedium: 4,
	config.TrafficHigh:   5,
}

// EstimateMonthlyCost is the traffic-adjusted monthly cost estimate used by
// the cost criterion and the recommendation engine's aggregates.
func EstimateMonthlyCost(cand ServiceCandidate, traffic string) (float64, bool) {
	if cand.Definition == nil || cand.Definition.Pricing == nil {
		return 0, false
	}
	mult, ok := trafficMultiplier[traffic]
	if !ok {
		mult = trafficMultiplier[config.TrafficMedium]
	}
	return cand.Definition.Pricing.BaseMonthly * mult, true
}

// scoreCost is a step function of the traffic-adjusted estimate, with bonuses
// for free tiers and usage-based pricing and a penalty when the projection
// eats most of an explicit budget. For fixed traffic it is monotonically
// non-increasing in the estimate.
func scoreCost(cand ServiceCandidate, reqs config.Requirements) CriterionScore {
	est, ok := EstimateMonthlyCost(cand, reqs.Traffic)
	if !ok {
		return CriterionScore{
			Score:    neutralScore,
			Warnings: []string{"no pricing data; using neutral cost score"},
		}
	}

	var score float64
	switch {
	case est <= 10:
		score = 1.0
	case est <= 50:
		score = 0.8
	case est <= 100:
		score = 0.6
	case est <= 200:
		score = 0.4
	default:
		score = 0.2
	}
	reasons := []string{fmt.Sprintf("estimated $%.0f/month at %s traffic", est, reqs.Traffic)}
	var warnings []string

	pricing := cand.Definition.Pricing
	if pricing.FreeTier {
		score += 0.1
		reasons = append(reasons, "free tier available")
	}
	if reqs.BudgetMonthly > 0 && est > 0.8*reqs.BudgetMonthly {
		score *= 0.7
		warnings = append(warnings, fmt.Sprintf("projected cost exceeds 80%% of the $%.0f budget", reqs.BudgetMonthly))
	}
	if pricing.Model == "usage" && reqs.Traffic != config.TrafficHigh {
		score += 0.1
		reasons = append(reasons, "usage-based pricing suits moderate traffic")
	}

	return CriterionScore{Score: clamp(score, 0, 1), Reasons: reasons, Warnings: warnings}
}

// scoreComplexity inverts the service's operational complexity against the
// user's tolerance: tolerant users barely care, intolerant users get a steep
// linear penalty, mid tolerance collapses to a coarse two-level score.
func scoreComplexity(cand ServiceCandidate, prefs config.Preferences) CriterionScore {
	if cand.Definition == nil || cand.Definition.Complexity == 0 {
		return CriterionScore{
			Score:    neutralScore,
			Warnings: []string{"no complexity rating; using neutral score"},
		}
	}
	c := cand.Definition.Complexity

	var score float64
	var reason string
	switch {
	case prefs.ComplexityTolerance >= 4:
		score = 0.8
		reason = "high complexity tolerance"
	case prefs.ComplexityTolerance <= 2:
		score = float64(6-c) / 5
		reason = fmt.Sprintf("complexity %d/5 against low tolerance", c)
	default:
		if c <= 3 {
			score = 0.7
		} else {
			score = 0.5
		}
		reason = fmt.Sprintf("complexity %d/5 at mid tolerance", c)
	}

	cs := CriterionScore{Score: clamp(score, 0, 1), Reasons: []string{reason}}
	if c >= 4 && prefs.ComplexityTolerance <= 2 {
		cs.Warnings = append(cs.Warnings, "operationally complex service under low complexity tolerance")
	}
	return cs
}

// scoreScalability rates the service against the traffic tier's minimum
// requirement: meeting it overrides the base to near-1.0, missing it applies
// a graded penalty per point of deficit.
func scoreScalability(cand ServiceCandidate, reqs config.Requirements) CriterionScore {
	if cand.Definition == nil || cand.Definition.Scalability == 0 {
		return CriterionScore{
			Score:    neutralScore,
			Warnings: []string{"no scalability rating; using neutral score"},
		}
	}
	rating := cand.Definition.Scalability
	need := minScalability[reqs.Traffic]

	var score float64
	var reasons []string
	var warnings []string
	if rating >= need {
		score = 0.95
		reasons = append(reasons, fmt.Sprintf("scalability %d/5 meets %s traffic", rating, reqs.Traffic))
	} else {
		deficit := need - rating
		score = clamp(float64(rating)/5-0.2*float64(deficit), 0.1, 1)
		warnings = append(warnings, fmt.Sprintf("scalability %d/5 below the %s-traffic minimum of %d", rating, reqs.Traffic, need))
	}

	if cand.configured("auto_scaling") {
		score += 0.1
		reasons = append(reasons, "auto-scaling configured")
	}
	return CriterionScore{Score: clamp(score, 0, 1), Reasons: reasons, Warnings: warnings}
}

// reliableCategories is the small whitelist of historically reliable service
// categories credited under high criticality.
var reliableCategories = map[string]bool{
	"storage":  true,
	"database": true,
	"cdn":      true,
	"queue":    true,
}

func scoreReliability(cand ServiceCandidate, reqs config.Requirements) CriterionScore {
	score := 0.7
	var reasons []string

	if cand.Definition == nil {
		return CriterionScore{
			Score:    neutralScore,
			Warnings: []string{"no service definition; using neutral score"},
		}
	}
	if cand.Definition.Managed {
		score += 0.2
		reasons = append(reasons, "fully managed service")
	}
	if cand.configured("multi_az") {
		score += 0.1
		reasons = append(reasons, "multi-AZ configured")
	}
	if cand.configured("backups") {
		score += 0.1
		reasons = append(reasons, "automated backups configured")
	}
	if reqs.Criticality == "high" && reliableCategories[cand.Definition.Category] {
		score += 0.1
		reasons = append(reasons, "historically reliable category for a critical workload")
	}
	return CriterionScore{Score: clamp(score, 0, 1), Reasons: reasons}
}

// performanceByCategory overrides the base performance score per service
// category, conditioned on the requested performance level.
var performanceByCategory = map[string]map[string]float64{
	"compute":  {"low": 0.7, "medium": 0.7, "high": 0.6},
	"database": {"low": 0.7, "medium": 0.6, "high": 0.5},
	"cache":    {"low": 0.8, "medium": 0.9, "high": 0.95},
	"cdn":      {"low": 0.8, "medium": 0.9, "high": 0.95},
	"storage":  {"low": 0.8, "medium": 0.7, "high": 0.6},
	"network":  {"low": 0.7, "medium": 0.7, "high": 0.7},
}

func scorePerformance(cand ServiceCandidate, prefs config.Preferences) CriterionScore {
	score := 0.6
	var reasons []string

	if cand.Definition != nil {
		if byLevel, ok := performanceByCategory[cand.Definition.Category]; ok {
			if s, ok := byLevel[prefs.PerformanceLevel]; ok {
				score = s
				reasons = append(reasons, fmt.Sprintf("%s category at %s performance requirement", cand.Definition.Category, prefs.PerformanceLevel))
			}
		}
	}
	if cand.configured("caching") || cand.configured("provisioned_capacity") {
		score += 0.1
		reasons = append(reasons, "aggressive caching or provisioned capacity")
	}
	return CriterionScore{Score: clamp(score, 0, 1), Reasons: reasons}
}

// scoreMaturity is a tiered constant: well-established services score 0.9,
// stable-but-newer 0.8, everything else 0.7, plus a flat bonus for strong
// documentation and community presence.
func scoreMaturity(cand ServiceCandidate) CriterionScore {
	if cand.Definition == nil {
		return CriterionScore{
			Score:    neutralScore,
			Warnings: []string{"no service definition; using neutral score"},
		}
	}

	score := 0.7
	reason := "newer service"
	switch {
	case cand.Definition.Established:
		score = 0.9
		reason = "well-established service"
	case cand.Definition.Stable:
		score = 0.8
		reason = "stable but newer service"
	}
	reasons := []string{reason}
	if cand.Definition.Community {
		score += 0.1
		reasons = append(reasons, "strong documentation and community")
	}
	return CriterionScore{Score: clamp(score, 0, 1), Reasons: reasons}
}
