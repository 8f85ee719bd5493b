// Package input builds an analysis request from a project directory on disk.
// The analysis pipeline itself never touches the filesystem; this package is
// the only place a directory tree becomes an in-memory AnalysisInput.
package input

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
)

// maxFileBytes caps how much of any one file is read into the corpus.
const maxFileBytes = 256 * 1024

// skipDirs are tree roots that carry no detection signal, only bulk.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	".next":        true,
}

// textExts are the file extensions worth feeding to the detectors.
var textExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".vue": true,
	".svelte": true, ".py": true, ".rb": true, ".go": true, ".php": true,
	".html": true, ".htm": true, ".css": true, ".scss": true, ".json": true,
	".yaml": true, ".yml": true, ".toml": true, ".md": true, ".txt": true,
	".env": true, ".sql": true, ".erb": true,
}

// extensionlessNames are manifest-like files without an extension.
var extensionlessNames = map[string]bool{
	"gemfile": true, "dockerfile": true, "procfile": true, "makefile": true,
}

// Collect walks a project tree rooted at fsys and returns the analysis input:
// every text file under the size cap, with paths relative to the root.
func Collect(fsys fs.FS, description string) (analyzer.AnalysisInput, error) {
	in := analyzer.AnalysisInput{Description: description}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		base := filepath.Base(p)
		if d.IsDir() {
			if skipDirs[base] {
				return fs.SkipDir
			}
			return nil
		}
		if !wantFile(base) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil
		}
		if len(raw) > maxFileBytes {
			raw = raw[:maxFileBytes]
		}
		in.Files = append(in.Files, analyzer.InputFile{
			Name:    filepath.ToSlash(p),
			Content: string(raw),
		})
		return nil
	})
	return in, err
}

func wantFile(base string) bool {
	lower := strings.ToLower(base)
	ext := filepath.Ext(lower)
	if ext == "" {
		return extensionlessNames[lower]
	}
	return textExts[ext]
}
