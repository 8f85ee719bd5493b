package analyzer

import (
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

// DetectAppType classifies the application shape, using the framework result
// as a cross-check on top of the type's own file and content indicators.
//
// The full-stack rule is the one genuinely cross-cutting special case: a
// full-stack project must show structural evidence of two independent code
// areas (a client-like path set and a server-like one). Without it the
// full-stack score is halved; with it, every competing non-full-stack type is
// penalized so a more specific category cannot starve full-stack of matches.
func DetectAppType(c *Corpus, framework DetectionResult, cat *catalog.Catalog, tun config.AppTypeTunables) DetectionResult {
	dual := hasDualStructure(c, cat.DualStructure)

	var matches []Match
	for i := range cat.AppTypes {
		at := &cat.AppTypes[i]

		var frameworkScore float64
		if at.NoFramework {
			if framework.Unknown() {
				frameworkScore = 1
			}
		} else if frameworkMatches(at.Frameworks, framework.Primary.ID) {
			frameworkScore = 1
		}

		raw := tun.WeightFramework*frameworkScore +
			tun.WeightFiles*fileNameScore(c, at.FilePatterns) +
			tun.WeightContent*regexScore(c.Text, at.ContentRegexps())
		if raw == 0 {
			continue
		}

		adjusted := raw
		if at.FullStack && !dual {
			adjusted *= tun.MissingDualPenalty
		}
		if !at.FullStack && dual {
			adjusted *= tun.DualPenalty
		}
		if adjusted > tun.StrongThreshold {
			adjusted *= tun.StrongBoost
		} else if adjusted < tun.WeakThreshold {
			adjusted *= tun.WeakPenalty
		}

		matches = append(matches, Match{
			ID:          at.ID,
			DisplayName: at.Name,
			Score:       raw,
			Confidence:  clamp(adjusted, 0, 1),
		})
	}

	return buildDetectionResult(matches)
}

// hasDualStructure checks for one client-like and one server-like path.
// Substring checks over conventional layouts; unconventional trees are a
// known false-negative source.
func hasDualStructure(c *Corpus, ds catalog.DualStructure) bool {
	return anyFileMatches(c, ds.ClientMarkers) && anyFileMatches(c, ds.ServerMarkers)
}

func anyFileMatches(c *Corpus, markers []string) bool {
	for _, m := range markers {
		if c.HasFileMatching(m) {
			return true
		}
	}
	return false
}

func frameworkMatches(compatible []string, id string) bool {
	if id == UnknownID {
		return false
	}
	for _, f := range compatible {
		if f == id {
			return true
		}
	}
	return false
}
