// Package project builds an Android project laid out the conventional way:
// sources in src/, resources in res/, assets in assets/, jars and native
// libraries in libs/, generated code in gen/ and output in bin/.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/blueprint/pathtools"
	"github.com/google/blueprint/proptools"

	"gni.dev/apkbuild/internal/config"
	"gni.dev/apkbuild/internal/platform"
)

var ErrNoPlatform = fmt.Errorf("%w: need the SDK path or a platform", platform.ErrConfig)

type Options struct {
	// Name defaults to the package attribute of the manifest.
	Name string

	// Platform is used as is when set. Otherwise one is looked up in
	// SDKDir; Target defaults to the targetSdkVersion of the manifest,
	// then to the most recent platform.
	Platform        *platform.Target
	SDKDir          string
	NDKDir          string
	Target          string
	PlatformOptions []platform.Option
}

type Project struct {
	Name     string
	Layout   Layout
	Manifest Manifest
	Platform *platform.Target

	ExtraSourceDirs []string
	// ExtraJars are jars outside of libs/, such as support libraries.
	ExtraJars []string

	Debug      bool
	JavaTarget string
	Encoding   string

	code *platform.CompiledCode
}

func New(manifest string, opts Options) (*Project, error) {
	layout, err := NewLayout(manifest)
	if err != nil {
		return nil, err
	}
	m, err := ReadManifest(layout.Manifest)
	if err != nil {
		return nil, err
	}

	p := opts.Platform
	if p == nil {
		if opts.SDKDir == "" {
			return nil, ErrNoPlatform
		}
		target := opts.Target
		if target == "" {
			target = m.Android.TargetSDK
		}
		if p, err = platform.Get(opts.SDKDir, opts.NDKDir, target, opts.PlatformOptions...); err != nil {
			return nil, err
		}
	}

	name := opts.Name
	if name == "" {
		name = m.Package
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %s has no package name", platform.ErrConfig, layout.Manifest)
	}

	return &Project{
		Name:     name,
		Layout:   layout,
		Manifest: m,
		Platform: p,
	}, nil
}

// ApplyConfig copies the compile settings of a build.star file onto the
// project.
func (p *Project) ApplyConfig(c *config.Project) {
	p.ExtraSourceDirs = append(p.ExtraSourceDirs, c.ExtraSourceDirs...)
	p.ExtraJars = append(p.ExtraJars, c.ExtraJars...)
	if c.JavaTarget != "" {
		p.JavaTarget = c.JavaTarget
	}
	if c.Encoding != "" {
		p.Encoding = c.Encoding
	}
	if c.Debug != nil {
		p.Debug = *c.Debug
	}
}

// compileJars is the classpath for javac and dx. Unlike packaging, extra
// jars are not filtered by existence.
func (p *Project) compileJars() []string {
	return append(onlyExisting(p.Layout.LibDir), p.ExtraJars...)
}

// Compile forces a recompile of the project.
func (p *Project) Compile() error {
	if err := os.MkdirAll(p.Layout.OutDir, 0755); err != nil {
		return err
	}
	code, err := p.Platform.Compile(platform.CompileOptions{
		Manifest:     p.Layout.Manifest,
		ProjectDir:   p.Layout.ProjectDir,
		SourceDirs:   append([]string{p.Layout.SourceDir}, p.ExtraSourceDirs...),
		ResourceDir:  p.Layout.ResourceDir,
		SourceGenDir: p.Layout.GenDir,
		ClassGenDir:  p.Layout.ClassDir,
		DexOutput:    filepath.Join(p.Layout.OutDir, "classes.dex"),
		ExtraJars:    p.compileJars(),
		Debug:        p.Debug,
		JavaTarget:   p.JavaTarget,
		Encoding:     p.Encoding,
	})
	if err != nil {
		return err
	}
	p.code = code
	return nil
}

// Code returns the result of the last successful Compile, or nil.
func (p *Project) Code() *platform.CompiledCode {
	return p.code
}

type BuildOptions struct {
	// Output defaults to bin/<name>.apk.
	Output string
	// Config restricts the resource configurations packed, e.g. "de".
	Config      *string
	PackageName *string
	VersionCode *int64
	VersionName *string
}

// BuildOptionsFrom takes the packaging settings of a build.star file.
func BuildOptionsFrom(c *config.Project) BuildOptions {
	return BuildOptions{
		Config:      c.Configurations,
		PackageName: c.PackageName,
		VersionCode: c.VersionCode,
		VersionName: c.VersionName,
	}
}

// Build compiles the project if needed and packs everything into an
// unsigned APK.
func (p *Project) Build(o BuildOptions) (*platform.Package, error) {
	if p.code == nil {
		if err := p.Compile(); err != nil {
			return nil, err
		}
	}

	var configFilter *string
	if proptools.String(o.Config) != "" {
		configFilter = o.Config
	}
	resourceFile := filepath.Join(p.Layout.OutDir, p.Name+".ap_")
	if configFilter != nil {
		resourceFile = pathtools.ReplaceExtension(resourceFile, *configFilter+".ap_")
	}
	ro := platform.ResourceOptions{
		Manifest:       p.Layout.Manifest,
		ResourceDir:    p.Layout.ResourceDir,
		Configurations: configFilter,
		PackageName:    o.PackageName,
		VersionCode:    o.VersionCode,
		VersionName:    o.VersionName,
		Output:         resourceFile,
	}
	if assets := onlyExisting(p.Layout.AssetDir); len(assets) > 0 {
		ro.AssetDir = assets[0]
	}
	resources, err := p.Platform.PackResources(ro)
	if err != nil {
		return nil, err
	}

	output := o.Output
	if output == "" {
		output = filepath.Join(p.Layout.OutDir, p.Name+".apk")
	}
	return p.Platform.BuildApk(output, platform.ApkOptions{
		Code:       p.code,
		Resources:  resources,
		JarPaths:   onlyExisting(append([]string{p.Layout.LibDir}, p.ExtraJars...)...),
		NativeDirs: onlyExisting(p.Layout.LibDir),
		SourceDirs: onlyExisting(p.Layout.SourceDir),
	})
}

// Clean deletes bin/ and gen/, and cleans native code when an NDK is
// configured.
func (p *Project) Clean() error {
	for _, dir := range []string{p.Layout.OutDir, p.Layout.GenDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	p.code = nil
	if p.Platform.HasNative() {
		return p.Platform.CleanNative(p.Layout.ProjectDir)
	}
	return nil
}
