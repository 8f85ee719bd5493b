package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

// DetectFramework scores every framework rule against the corpus and returns
// the best match with ranked alternatives. Four indicator categories are
// scored independently (matches / total) and combined with the configured
// weights; a corroboration boost rewards a strong dependency signal backed by
// file or content evidence, and a weak-match penalty suppresses noise.
func DetectFramework(c *Corpus, cat *catalog.Catalog, tun config.FrameworkTunables) DetectionResult {
	deps, _ := extractDependencies(c)

	var matches []Match
	for i := range cat.Frameworks {
		fw := &cat.Frameworks[i]

		depScore := dependencyScore(fw.Dependencies, deps)
		fileScore := fileNameScore(c, fw.FilePatterns)
		contentScore := regexScore(c.Text, fw.ContentRegexps())
		commandScore := regexScore(c.Text, fw.CommandRegexps())

		raw := tun.WeightDependencies*depScore +
			tun.WeightFiles*fileScore +
			tun.WeightContent*contentScore +
			tun.WeightCommands*commandScore
		if raw == 0 {
			continue
		}

		adjusted := raw
		if depScore > tun.BoostDepThreshold &&
			(fileScore > tun.BoostSupportThreshold || contentScore > tun.BoostSupportThreshold) {
			adjusted *= tun.BoostFactor
		}
		if adjusted < tun.WeakThreshold {
			adjusted *= tun.WeakPenalty
		}

		matches = append(matches, Match{
			ID:          fw.ID,
			DisplayName: fw.Name,
			Score:       raw,
			Confidence:  clamp(adjusted, 0, 1),
		})
	}

	return buildDetectionResult(matches)
}

// buildDetectionResult picks the primary and orders alternatives by
// descending confidence, ties broken by rule declaration order.
func buildDetectionResult(matches []Match) DetectionResult {
	if len(matches) == 0 {
		return unknownResult()
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return DetectionResult{Primary: matches[0], Alternatives: matches[1:]}
}

func dependencyScore(wanted []string, deps dependencySet) float64 {
	if len(wanted) == 0 || len(deps) == 0 {
		return 0
	}
	matched := 0
	for _, d := range wanted {
		if deps[strings.ToLower(d)] {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

func fileNameScore(c *Corpus, patterns []string) float64 {
	if len(patterns) == 0 {
		return 0
	}
	matched := 0
	for _, p := range patterns {
		if c.HasFileMatching(p) {
			matched++
		}
	}
	return float64(matched) / float64(len(patterns))
}

func regexScore(text string, res []*regexp.Regexp) float64 {
	if len(res) == 0 {
		return 0
	}
	matched := 0
	for _, re := range res {
		if re.MatchString(text) {
			matched++
		}
	}
	return float64(matched) / float64(len(res))
}
