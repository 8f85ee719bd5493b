package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

const cacheSize = 128

// Analyzer orchestrates the detection pipeline: framework, then application
// type (which cross-checks the framework result), then infrastructure.
// It owns the catalog loader handle, so the rule tables load at most once per
// process no matter how many analyses run. Results are memoized in a bounded
// LRU keyed by input digest; the pipeline is deterministic, so a cache hit is
// indistinguishable from a recomputation.
type Analyzer struct {
	loader *catalog.Loader
	tun    config.Tunables
	cache  *lru.Cache[string, *AnalysisResult]
}

// New builds an Analyzer around a catalog loader and tunables.
func New(loader *catalog.Loader, tun config.Tunables) *Analyzer {
	// Size is fixed and positive; lru.New only fails on size <= 0.
	cache, _ := lru.New[string, *AnalysisResult](cacheSize)
	return &Analyzer{loader: loader, tun: tun, cache: cache}
}

// Analyze runs the full pipeline over one input. Any internal fault surfaces
// as a single wrapped error and no partial result is returned. Empty input is
// not an error: every detector reports its unknown/zero-confidence state.
func (a *Analyzer) Analyze(input AnalysisInput) (*AnalysisResult, error) {
	key := Fingerprint(input)
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	cat, err := a.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	corpus := BuildCorpus(input)
	if corpus.Empty() {
		result := &AnalysisResult{
			Framework:      unknownResult(),
			AppType:        unknownResult(),
			Infrastructure: InfraResult{Capabilities: map[string]CapabilityRequirement{}, Complexity: 1},
			Timestamp:      time.Now().UTC(),
		}
		a.cache.Add(key, result)
		return result, nil
	}

	framework := DetectFramework(corpus, cat, a.tun.Framework)
	appType := DetectAppType(corpus, framework, cat, a.tun.AppType)
	infra := DetectInfrastructure(corpus, cat, a.tun.Infra)

	result := &AnalysisResult{
		Framework:      framework,
		AppType:        appType,
		Infrastructure: infra,
		OverallConfidence: overallConfidence(
			framework.Primary.Confidence,
			appType.Primary.Confidence,
			infraConfidence(infra),
			a.tun.Overall,
		),
		Timestamp: time.Now().UTC(),
	}

	a.cache.Add(key, result)
	return result, nil
}

// overallConfidence is the weighted mean of the stage confidences. A stage
// with confidence exactly zero is excluded from both the numerator and the
// weight total, so an undetected stage does not drag the others down.
func overallConfidence(framework, appType, infra float64, w config.OverallTunables) float64 {
	var num, den float64
	for _, s := range []struct {
		conf, weight float64
	}{
		{framework, w.WeightFramework},
		{appType, w.WeightAppType},
		{infra, w.WeightInfra},
	} {
		if s.conf == 0 {
			continue
		}
		num += s.weight * s.conf
		den += s.weight
	}
	if den == 0 {
		return 0
	}
	return clamp(num/den, 0, 1)
}

// infraConfidence reduces the per-capability confidences to one stage value:
// the mean over reported capabilities, zero when nothing was detected.
func infraConfidence(infra InfraResult) float64 {
	if len(infra.Capabilities) == 0 {
		return 0
	}
	var sum float64
	for _, c := range infra.Capabilities {
		sum += c.Confidence
	}
	return sum / float64(len(infra.Capabilities))
}

// Fingerprint returns a deterministic digest of an input, used as the memo
// cache key. Field lengths are folded in so adjacent fields cannot collide.
func Fingerprint(input AnalysisInput) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(len(input.Description))))
	h.Write([]byte(input.Description))
	for _, f := range input.Files {
		h.Write([]byte(strconv.Itoa(len(f.Name))))
		h.Write([]byte(f.Name))
		h.Write([]byte(strconv.Itoa(len(f.Content))))
		h.Write([]byte(f.Content))
	}
	return hex.EncodeToString(h.Sum(nil))
}
