// Package ranker scores service candidates along six weighted criteria: cost,
// complexity, scalability, reliability, performance and maturity. Ranking is a
// pure function of its inputs; the same candidates, requirements and
// preferences always produce the same order and the same scores.
package ranker

import (
	"sort"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

// Tier buckets assigned from the overall score after the final sort.
const (
	TierRecommended    = "recommended"
	TierSuitable       = "suitable"
	TierAcceptable     = "acceptable"
	TierNotRecommended = "not-recommended"
)

// Criterion names keying the score breakdown.
const (
	CriterionCost        = "cost"
	CriterionComplexity  = "complexity"
	CriterionScalability = "scalability"
	CriterionReliability = "reliability"
	CriterionPerformance = "performance"
	CriterionMaturity    = "maturity"
)

// ServiceCandidate is a service identifier plus its resolved definition and
// an optional user-supplied configuration map (auto_scaling, multi_az,
// backups, caching, provisioned_capacity).
type ServiceCandidate struct {
	ServiceID  string           `json:"service_id"`
	Definition *catalog.Service `json:"definition"`
	Config     map[string]bool  `json:"config,omitempty"`
}

func (s ServiceCandidate) configured(key string) bool {
	return s.Config[key]
}

// CriterionScore is one criterion's clamped score with its reasoning.
type CriterionScore struct {
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// RankedService is a candidate with its overall score, per-criterion
// breakdown, final rank and tier.
type RankedService struct {
	ServiceCandidate
	Overall   float64                   `json:"overall"`
	Breakdown map[string]CriterionScore `json:"breakdown"`
	Rank      int                       `json:"rank"`
	Tier      string                    `json:"tier"`
}

// Context carries analysis-derived facts the criteria may consult.
type Context struct {
	AppType         string `json:"app_type"`
	InfraComplexity int    `json:"infra_complexity"`
}

// RankServices scores every candidate, sorts stably by overall score
// (ties keep candidate declaration order) and assigns ranks and tiers.
func RankServices(candidates []ServiceCandidate, reqs config.Requirements, prefs config.Preferences, rctx Context, tun config.RankingTunables) []RankedService {
	reqs = reqs.Normalize()
	prefs = prefs.Normalize()

	ranked := make([]RankedService, 0, len(candidates))
	for _, cand := range candidates {
		breakdown := map[string]CriterionScore{
			CriterionCost:        scoreCost(cand, reqs),
			CriterionComplexity:  scoreComplexity(cand, prefs),
			CriterionScalability: scoreScalability(cand, reqs),
			CriterionReliability: scoreReliability(cand, reqs),
			CriterionPerformance: scorePerformance(cand, prefs),
			CriterionMaturity:    scoreMaturity(cand),
		}

		overall := tun.WeightCost*breakdown[CriterionCost].Score +
			tun.WeightComplexity*breakdown[CriterionComplexity].Score +
			tun.WeightScalability*breakdown[CriterionScalability].Score +
			tun.WeightReliability*breakdown[CriterionReliability].Score +
			tun.WeightPerformance*breakdown[CriterionPerformance].Score +
			tun.WeightMaturity*breakdown[CriterionMaturity].Score

		ranked = append(ranked, RankedService{
			ServiceCandidate: cand,
			Overall:          clamp(overall, 0, 1),
			Breakdown:        breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Overall > ranked[j].Overall
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Tier = TierFor(ranked[i].Overall, tun)
	}
	return ranked
}

// TierFor maps an overall score to its discrete tier.
func TierFor(overall float64, tun config.RankingTunables) string {
	switch {
	case overall >= tun.TierRecommended:
		return TierRecommended
	case overall >= tun.TierSuitable:
		return TierSuitable
	case overall >= tun.TierAcceptable:
		return TierAcceptable
	default:
		return TierNotRecommended
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
