package catalog

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Loader memoizes a single catalog load for the process lifetime. Concurrent
// callers during the first load all await the same result; there is no
// invalidation path. Pass one Loader into the orchestrator instead of reaching
// for a package-level singleton.
type Loader struct {
	once sync.Once
	cat  *Catalog
	err  error
}

// NewLoader returns an unloaded Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and compiles the embedded rule tables, at most once.
func (l *Loader) Load() (*Catalog, error) {
	l.once.Do(func() {
		l.cat, l.err = parseEmbedded()
	})
	return l.cat, l.err
}

func parseEmbedded() (*Catalog, error) {
	cat := &Catalog{}

	var frameworks struct {
		Frameworks []Framework `yaml:"frameworks"`
	}
	if err := unmarshalData("data/frameworks.yaml", &frameworks); err != nil {
		return nil, err
	}
	cat.Frameworks = frameworks.Frameworks

	var appTypes struct {
		DualStructure DualStructure `yaml:"dual_structure"`
		AppTypes      []AppType     `yaml:"app_types"`
	}
	if err := unmarshalData("data/apptypes.yaml", &appTypes); err != nil {
		return nil, err
	}
	cat.AppTypes = appTypes.AppTypes
	cat.DualStructure = appTypes.DualStructure

	var capabilities struct {
		Capabilities []Capability `yaml:"capabilities"`
	}
	if err := unmarshalData("data/capabilities.yaml", &capabilities); err != nil {
		return nil, err
	}
	cat.Capabilities = capabilities.Capabilities

	var services struct {
		Services []Service `yaml:"services"`
	}
	if err := unmarshalData("data/services.yaml", &services); err != nil {
		return nil, err
	}
	cat.Services = services.Services

	var patterns struct {
		CapabilityDefaults map[string]string `yaml:"capability_defaults"`
		Patterns           []Pattern         `yaml:"patterns"`
	}
	if err := unmarshalData("data/patterns.yaml", &patterns); err != nil {
		return nil, err
	}
	cat.Patterns = patterns.Patterns
	cat.CapabilityDefaults = patterns.CapabilityDefaults

	if err := cat.compile(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

func unmarshalData(name string, into any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("catalog: parsing %s: %w", name, err)
	}
	return nil
}
