package platform

import (
	"fmt"
	"os"
)

// Ref is anything that names a file: a plain path or an artifact produced by
// one of the build steps.
type Ref interface {
	Filename() string
}

// PathRef is a raw filesystem path.
type PathRef string

func (p PathRef) Filename() string {
	return string(p)
}

type file struct {
	path string
}

func (f file) Filename() string {
	return f.path
}

// Delete removes the file from disk. Artifacts are never deleted implicitly.
func (f file) Delete() error {
	return os.Remove(f.path)
}

// CompiledCode is a classes.dex file.
type CompiledCode struct {
	file
}

func (c *CompiledCode) String() string {
	return fmt.Sprintf("CompiledCode <%s>", c.path)
}

// PackagedResources is a resource archive produced by aapt (.ap_).
type PackagedResources struct {
	file
}

func (r *PackagedResources) String() string {
	return fmt.Sprintf("PackagedResources <%s>", r.path)
}

// Package is an APK. It remembers the Target that built it so it can be
// signed and aligned directly.
type Package struct {
	file
	target *Target
}

func (p *Package) String() string {
	return fmt.Sprintf("Package <%s>", p.path)
}

func (p *Package) Target() *Target {
	return p.target
}

func (p *Package) Sign(keystore, alias, password string) error {
	return p.target.Sign(p, keystore, alias, password)
}

// Align aligns the package. See Target.Align.
func (p *Package) Align(output string) (*Package, error) {
	return p.target.Align(p, output)
}
