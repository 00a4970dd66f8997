package project

import (
	"os"
	"path/filepath"
)

// Layout is the conventional directory structure of a project, derived from
// the location of its manifest.
type Layout struct {
	Manifest    string
	ProjectDir  string
	SourceDir   string
	ResourceDir string
	GenDir      string
	OutDir      string
	ClassDir    string
	AssetDir    string
	LibDir      string
}

func NewLayout(manifest string) (Layout, error) {
	manifest, err := filepath.Abs(manifest)
	if err != nil {
		return Layout{}, err
	}
	dir := filepath.Dir(manifest)
	out := filepath.Join(dir, "bin")
	return Layout{
		Manifest:    manifest,
		ProjectDir:  dir,
		SourceDir:   filepath.Join(dir, "src"),
		ResourceDir: filepath.Join(dir, "res"),
		GenDir:      filepath.Join(dir, "gen"),
		OutDir:      out,
		ClassDir:    filepath.Join(out, "classes"),
		AssetDir:    filepath.Join(dir, "assets"),
		LibDir:      filepath.Join(dir, "libs"),
	}, nil
}

func onlyExisting(paths ...string) []string {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	return existing
}
