package input_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/input"
)

func TestCollect(t *testing.T) {
	fsys := fstest.MapFS{
		"package.json":                {Data: []byte(`{"dependencies": {"react": "^18.0.0"}}`)},
		"src/App.jsx":                 {Data: []byte("export default () => null;")},
		"Gemfile":                     {Data: []byte("gem 'rails'")},
		"node_modules/react/index.js": {Data: []byte("module.exports = {};")},
		".git/HEAD":                   {Data: []byte("ref: refs/heads/main")},
		"logo.png":                    {Data: []byte{0x89, 0x50}},
		"README.md":                   {Data: []byte("# demo")},
	}

	in, err := input.Collect(fsys, "demo project")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if in.Description != "demo project" {
		t.Errorf("description = %q", in.Description)
	}

	names := map[string]bool{}
	for _, f := range in.Files {
		names[f.Name] = true
	}
	for _, want := range []string{"package.json", "src/App.jsx", "Gemfile", "README.md"} {
		if !names[want] {
			t.Errorf("missing %s in %v", want, names)
		}
	}
	for _, skip := range []string{"node_modules/react/index.js", ".git/HEAD", "logo.png"} {
		if names[skip] {
			t.Errorf("%s should have been skipped", skip)
		}
	}
}

func TestCollectTruncatesLargeFiles(t *testing.T) {
	big := strings.Repeat("a", 300*1024)
	fsys := fstest.MapFS{"data.json": {Data: []byte(big)}}

	in, err := input.Collect(fsys, "")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(in.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(in.Files))
	}
	if len(in.Files[0].Content) != 256*1024 {
		t.Errorf("content length = %d, want the 256KiB cap", len(in.Files[0].Content))
	}
}

func TestCollectEmptyTree(t *testing.T) {
	in, err := input.Collect(fstest.MapFS{}, "just a description")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(in.Files) != 0 {
		t.Errorf("expected no files, got %d", len(in.Files))
	}
	if in.Description != "just a description" {
		t.Errorf("description lost: %q", in.Description)
	}
}
