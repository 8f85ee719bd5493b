package analyzer

import (
	"strings"
)

// Corpus is the normalized view of one analysis input: a single lower-cased
// searchable blob plus the file-name list. Built once per request and shared
// by every matcher downstream; never mutated afterward.
type Corpus struct {
	Text      string   `json:"text"`
	FileNames []string `json:"file_names"`

	// raw keeps the original file bodies keyed by lower-cased name so
	// manifest parsing can re-read structured content.
	raw map[string]string
}

// BuildCorpus normalizes the input. File names are lower-cased; the text blob
// is the description followed by every file body, all lower-cased.
func BuildCorpus(input AnalysisInput) *Corpus {
	var b strings.Builder
	b.WriteString(input.Description)

	names := make([]string, 0, len(input.Files))
	raw := make(map[string]string, len(input.Files))
	for _, f := range input.Files {
		name := strings.ToLower(strings.TrimSpace(f.Name))
		if name == "" {
			continue
		}
		names = append(names, name)
		raw[name] = f.Content
		b.WriteString("\n")
		b.WriteString(f.Content)
	}

	return &Corpus{
		Text:      strings.ToLower(b.String()),
		FileNames: names,
		raw:       raw,
	}
}

// File returns the raw (original-case) content of the named file.
func (c *Corpus) File(name string) (string, bool) {
	content, ok := c.raw[strings.ToLower(name)]
	return content, ok
}

// HasFileMatching reports whether any file name contains the pattern.
func (c *Corpus) HasFileMatching(pattern string) bool {
	for _, name := range c.FileNames {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// fileWithSuffix returns the first file name ending in suffix.
func (c *Corpus) fileWithSuffix(suffix string) (string, bool) {
	for _, name := range c.FileNames {
		if strings.HasSuffix(name, suffix) {
			return name, true
		}
	}
	return "", false
}

// Empty reports whether the corpus carries no searchable content at all.
func (c *Corpus) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.FileNames) == 0
}
