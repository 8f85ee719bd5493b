package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// manifestNames are the package descriptors we try, in order. Matching is by
// file-name suffix so nested manifests (client/package.json) still count.
var manifestNames = []string{"package.json", "requirements.txt", "gemfile", "pipfile"}

var gemRe = regexp.MustCompile(`(?m)^\s*gem\s+['"]([^'"]+)['"]`)

// dependencySet is the lower-cased declared dependency names of a project.
type dependencySet map[string]bool

// extractDependencies locates and opportunistically parses a manifest-like
// file. Any parse failure degrades to "no dependency evidence"; it never
// returns an error. found is true when a manifest file exists at all,
// regardless of whether it parsed.
func extractDependencies(c *Corpus) (deps dependencySet, found bool) {
	deps = dependencySet{}
	for _, name := range manifestNames {
		file, ok := c.fileWithSuffix(name)
		if !ok {
			continue
		}
		found = true
		content, _ := c.File(file)
		switch name {
		case "package.json":
			parsePackageJSON(content, deps)
		case "requirements.txt", "pipfile":
			parseRequirements(content, deps)
		case "gemfile":
			parseGemfile(content, deps)
		}
	}
	return deps, found
}

func parsePackageJSON(content string, deps dependencySet) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		// Malformed manifest: contributes zero evidence, never raises.
		return
	}
	for name := range manifest.Dependencies {
		deps[strings.ToLower(name)] = true
	}
	for name := range manifest.DevDependencies {
		deps[strings.ToLower(name)] = true
	}
}

func parseRequirements(content string, deps dependencySet) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name := line
		for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
			if i := strings.Index(name, sep); i >= 0 {
				name = name[:i]
			}
		}
		if name != "" {
			deps[strings.ToLower(name)] = true
		}
	}
}

func parseGemfile(content string, deps dependencySet) {
	for _, m := range gemRe.FindAllStringSubmatch(content, -1) {
		deps[strings.ToLower(m[1])] = true
	}
}
