// Package catalog holds the declarative rule tables the analysis pipeline
// runs on: framework and application-type indicator sets, infrastructure
// capability indicators, the AWS service definitions, and the architecture
// pattern templates. The tables ship as embedded YAML and are parsed once
// per process by Loader.
package catalog

import (
	"fmt"
	"regexp"
)

// Framework is one row of the framework rule table. Each indicator list is
// scored as an independent category (matches / total) so the detector's
// category weighting stays intact.
type Framework struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Language        string   `yaml:"language" json:"language"`
	Dependencies    []string `yaml:"dependencies" json:"dependencies"`
	FilePatterns    []string `yaml:"file_patterns" json:"file_patterns"`
	ContentPatterns []string `yaml:"content_patterns" json:"content_patterns"`
	CommandPatterns []string `yaml:"command_patterns" json:"command_patterns"`

	contentRes []*regexp.Regexp
	commandRes []*regexp.Regexp
}

// ContentRegexps returns the compiled content patterns.
func (f *Framework) ContentRegexps() []*regexp.Regexp { return f.contentRes }

// CommandRegexps returns the compiled build/run command patterns.
func (f *Framework) CommandRegexps() []*regexp.Regexp { return f.commandRes }

// AppType is one row of the application-shape rule table.
type AppType struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Frameworks      []string `yaml:"frameworks" json:"frameworks"`
	NoFramework     bool     `yaml:"no_framework" json:"no_framework"`
	FullStack       bool     `yaml:"full_stack" json:"full_stack"`
	FilePatterns    []string `yaml:"file_patterns" json:"file_patterns"`
	ContentPatterns []string `yaml:"content_patterns" json:"content_patterns"`

	contentRes []*regexp.Regexp
}

// ContentRegexps returns the compiled content patterns.
func (t *AppType) ContentRegexps() []*regexp.Regexp { return t.contentRes }

// Indicator is a single piece of evidence for an infrastructure capability.
// Strong indicators (a specific ORM or auth library name) add a flat bonus on
// top of the match fraction.
type Indicator struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Name    string `yaml:"name" json:"name"`
	Strong  bool   `yaml:"strong,omitempty" json:"strong,omitempty"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern.
func (i *Indicator) Regexp() *regexp.Regexp { return i.re }

// Subtype is a competing indicator set inside one capability. Database
// detection races its "sql" and "nosql" subtypes against each other.
type Subtype struct {
	ID         string      `yaml:"id" json:"id"`
	Indicators []Indicator `yaml:"indicators" json:"indicators"`
}

// Capability is one row of the infrastructure rule table.
type Capability struct {
	ID         string      `yaml:"id" json:"id"`
	Weight     int         `yaml:"weight" json:"weight"`
	Indicators []Indicator `yaml:"indicators,omitempty" json:"indicators,omitempty"`
	Subtypes   []Subtype   `yaml:"subtypes,omitempty" json:"subtypes,omitempty"`
}

// Pricing describes how a service bills. A nil Pricing on a Service means the
// ranker falls back to a neutral cost score.
type Pricing struct {
	Model       string  `yaml:"model" json:"model"` // usage, fixed or tiered
	BaseMonthly float64 `yaml:"base_monthly" json:"base_monthly"`
	FreeTier    bool    `yaml:"free_tier" json:"free_tier"`
}

// Service is a rankable AWS service definition.
type Service struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Category     string   `yaml:"category" json:"category"`
	Capabilities []string `yaml:"capabilities" json:"capabilities"`
	Pricing      *Pricing `yaml:"pricing,omitempty" json:"pricing,omitempty"`
	Complexity   int      `yaml:"complexity" json:"complexity"`   // 1..5
	Scalability  int      `yaml:"scalability" json:"scalability"` // 1..5
	Managed      bool     `yaml:"managed" json:"managed"`
	Established  bool     `yaml:"established" json:"established"`
	Stable       bool     `yaml:"stable" json:"stable"`
	Community    bool     `yaml:"community" json:"community"`
}

// Covers reports whether the service provides the named capability.
func (s *Service) Covers(capability string) bool {
	for _, c := range s.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Variant derives an alternate configuration of a pattern along one
// optimization axis by substituting or adding services. An empty substitution
// value drops the service.
type Variant struct {
	ID            string            `yaml:"id" json:"id"`
	Name          string            `yaml:"name" json:"name"`
	Axis          string            `yaml:"axis" json:"axis"` // cost, performance or simplicity
	Substitutions map[string]string `yaml:"substitutions,omitempty" json:"substitutions,omitempty"`
	Additions     []string          `yaml:"additions,omitempty" json:"additions,omitempty"`
	Pros          []string          `yaml:"pros,omitempty" json:"pros,omitempty"`
	Cons          []string          `yaml:"cons,omitempty" json:"cons,omitempty"`
}

// Pattern is an architecture template: a default service set plus the
// application shapes it serves.
type Pattern struct {
	ID              string            `yaml:"id" json:"id"`
	Name            string            `yaml:"name" json:"name"`
	Description     string            `yaml:"description" json:"description"`
	AppTypes        []string          `yaml:"app_types" json:"app_types"`
	Services        []string          `yaml:"services" json:"services"`
	Pros            []string          `yaml:"pros" json:"pros"`
	Cons            []string          `yaml:"cons" json:"cons"`
	Characteristics map[string]string `yaml:"characteristics" json:"characteristics"`
	Variants        []Variant         `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// ServesAppType reports whether the pattern lists the given application type.
func (p *Pattern) ServesAppType(id string) bool {
	for _, t := range p.AppTypes {
		if t == id {
			return true
		}
	}
	return false
}

// DualStructure holds the path markers for the full-stack cross-cutting rule:
// a corpus showing both a client-like and a server-like path set counts as
// structural evidence of two independent code areas. Substring checks against
// conventional layouts; non-conventional trees are a known false-negative
// source.
type DualStructure struct {
	ClientMarkers []string `yaml:"client_markers"`
	ServerMarkers []string `yaml:"server_markers"`
}

// Catalog is the fully parsed, compiled rule set. It is immutable after Load.
type Catalog struct {
	Frameworks    []Framework
	AppTypes      []AppType
	DualStructure DualStructure
	Capabilities  []Capability
	Services      []Service
	Patterns      []Pattern

	// CapabilityDefaults maps a required capability (optionally suffixed with
	// its subtype, e.g. "database/sql") to the service the matcher adds when a
	// pattern's default set leaves it uncovered.
	CapabilityDefaults map[string]string

	serviceByID map[string]*Service
	patternByID map[string]*Pattern
}

// Service looks up a service definition by ID.
func (c *Catalog) Service(id string) (*Service, error) {
	s, ok := c.serviceByID[id]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown service %q", id)
	}
	return s, nil
}

// Pattern looks up an architecture pattern by ID.
func (c *Catalog) Pattern(id string) (*Pattern, error) {
	p, ok := c.patternByID[id]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown pattern %q", id)
	}
	return p, nil
}

// PatternsForAppType returns the patterns serving the given application type,
// in declaration order.
func (c *Catalog) PatternsForAppType(id string) []*Pattern {
	var out []*Pattern
	for i := range c.Patterns {
		if c.Patterns[i].ServesAppType(id) {
			out = append(out, &c.Patterns[i])
		}
	}
	return out
}

// compile builds lookup maps and compiles every content pattern. A pattern
// that fails to compile is a rule-table fault, not an input fault.
func (c *Catalog) compile() error {
	c.serviceByID = make(map[string]*Service, len(c.Services))
	for i := range c.Services {
		c.serviceByID[c.Services[i].ID] = &c.Services[i]
	}
	c.patternByID = make(map[string]*Pattern, len(c.Patterns))
	for i := range c.Patterns {
		c.patternByID[c.Patterns[i].ID] = &c.Patterns[i]
	}

	for i := range c.Frameworks {
		f := &c.Frameworks[i]
		var err error
		if f.contentRes, err = compileAll(f.ContentPatterns); err != nil {
			return fmt.Errorf("framework %q: %w", f.ID, err)
		}
		if f.commandRes, err = compileAll(f.CommandPatterns); err != nil {
			return fmt.Errorf("framework %q: %w", f.ID, err)
		}
	}
	for i := range c.AppTypes {
		t := &c.AppTypes[i]
		var err error
		if t.contentRes, err = compileAll(t.ContentPatterns); err != nil {
			return fmt.Errorf("app type %q: %w", t.ID, err)
		}
	}
	for i := range c.Capabilities {
		rule := &c.Capabilities[i]
		if err := compileIndicators(rule.Indicators); err != nil {
			return fmt.Errorf("capability %q: %w", rule.ID, err)
		}
		for j := range rule.Subtypes {
			if err := compileIndicators(rule.Subtypes[j].Indicators); err != nil {
				return fmt.Errorf("capability %q subtype %q: %w", rule.ID, rule.Subtypes[j].ID, err)
			}
		}
	}
	return nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func compileIndicators(inds []Indicator) error {
	for i := range inds {
		re, err := regexp.Compile(inds[i].Pattern)
		if err != nil {
			return fmt.Errorf("indicator %q: %w", inds[i].Pattern, err)
		}
		inds[i].re = re
	}
	return nil
}
