package platform

import (
	"os"
	"path/filepath"

	"github.com/google/blueprint/proptools"
	"github.com/google/uuid"

	"gni.dev/apkbuild/internal/tool"
)

// Step names reported to the observer.
const (
	StepGenerateR     = "generate-r"
	StepRenderscript  = "renderscript"
	StepAidl          = "aidl"
	StepNative        = "ndk-build"
	StepNativeClean   = "ndk-clean"
	StepJava          = "javac"
	StepDex           = "dex"
	StepCompile       = "compile"
	StepPackResources = "pack-resources"
	StepBuildApk      = "build-apk"
	StepSign          = "sign"
	StepAlign         = "align"
)

// DefaultJavaTarget is the class file version used when none is given.
const DefaultJavaTarget = "1.5"

func (t *Target) step(name string, fn func() error) error {
	t.obs.StepStarted(name)
	err := fn()
	t.obs.StepFinished(name, err)
	return err
}

func (t *Target) ran(step, cmdline string, err error) error {
	t.obs.Command(step, cmdline)
	return err
}

// tempFile returns a fresh path in the temp directory. The file itself is
// not created.
func (t *Target) tempFile(prefix, ext string) string {
	dir := t.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, prefix+uuid.NewString()+ext)
}

// GenerateR writes R.java for the resources in resourceDir into outputDir.
//
//	aapt package -m -M AndroidManifest.xml -S res/ -I android.jar -J gen/
func (t *Target) GenerateR(manifest, resourceDir, outputDir string) error {
	return t.step(StepGenerateR, func() error {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return err
		}
		cmdline, err := t.aapt.Run(tool.AaptOptions{
			Command:     "package",
			MakeDirs:    proptools.BoolPtr(true),
			Manifest:    proptools.StringPtr(manifest),
			ResourceDir: proptools.StringPtr(resourceDir),
			ROutput:     proptools.StringPtr(outputDir),
			Include:     []string{t.FrameworkLibrary},
		})
		return t.ran(StepGenerateR, cmdline, err)
	})
}

// CompileRenderscript compiles every .rs file below sourceDirs. Bitcode goes
// to res/raw, the reflected Java classes to sourceGenDir. Without any .rs
// files nothing is run.
func (t *Target) CompileRenderscript(resourceDir, sourceGenDir string, sourceDirs []string) error {
	files, err := findFiles(sourceDirs, ".rs")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	return t.step(StepRenderscript, func() error {
		raw := filepath.Join(resourceDir, "raw")
		for _, dir := range []string{raw, sourceGenDir} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		cmdline, err := t.llvmRs.Run(tool.LlvmRsOptions{
			Files:          files,
			ResourceOutput: proptools.StringPtr(raw),
			SourceOutput:   proptools.StringPtr(sourceGenDir),
			Include:        t.RSIncludes,
		})
		return t.ran(StepRenderscript, cmdline, err)
	})
}

// CompileAidl compiles each .aidl file below sourceDirs into outputDir.
//
//	aidl -pframework.aidl -Isrc/ -ogen/ Foo.aidl
func (t *Target) CompileAidl(sourceDirs []string, outputDir string) error {
	return t.step(StepAidl, func() error {
		files, err := findFiles(sourceDirs, ".aidl")
		if err != nil {
			return err
		}
		for _, f := range files {
			cmdline, err := t.aidl.Run(tool.AidlOptions{
				File:         f,
				Preprocessed: proptools.StringPtr(t.FrameworkAidl),
				SearchPath:   sourceDirs,
				OutputDir:    proptools.StringPtr(outputDir),
			})
			if err := t.ran(StepAidl, cmdline, err); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *Target) CompileNative(projectDir string) error {
	if t.ndkBuild == nil {
		return ErrNativeUnsupported
	}
	return t.step(StepNative, func() error {
		cmdline, err := t.ndkBuild.Build(projectDir)
		return t.ran(StepNative, cmdline, err)
	})
}

func (t *Target) CleanNative(projectDir string) error {
	if t.ndkBuild == nil {
		return ErrNativeUnsupported
	}
	return t.step(StepNativeClean, func() error {
		cmdline, err := t.ndkBuild.Clean(projectDir)
		return t.ran(StepNativeClean, cmdline, err)
	})
}

type JavaOptions struct {
	SourceDirs []string
	OutputDir  string
	// ExtraJars go on the classpath. Directories are searched for .jar
	// files recursively.
	ExtraJars []string
	Debug     bool
	// Target defaults to DefaultJavaTarget.
	Target   string
	Encoding string
}

// CompileJava compiles all .java files below o.SourceDirs into o.OutputDir.
func (t *Target) CompileJava(o JavaOptions) error {
	return t.step(StepJava, func() error {
		files, err := findFiles(o.SourceDirs, ".java")
		if err != nil {
			return err
		}
		jars, err := collectJars(o.ExtraJars)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(o.OutputDir, 0755); err != nil {
			return err
		}
		target := o.Target
		if target == "" {
			target = DefaultJavaTarget
		}
		opts := tool.JavacOptions{
			Files:         files,
			DestDir:       proptools.StringPtr(o.OutputDir),
			Target:        proptools.StringPtr(target),
			Classpath:     jars,
			Bootclasspath: proptools.StringPtr(t.FrameworkLibrary),
			Debug:         o.Debug,
		}
		if o.Encoding != "" {
			opts.Encoding = proptools.StringPtr(o.Encoding)
		}
		cmdline, err := t.javac.Run(opts)
		return t.ran(StepJava, cmdline, err)
	})
}

// Dex converts the class files in classDir, plus any extra jars, into a
// single classes.dex. An empty output picks a unique temporary file.
//
//	dx --dex --output=bin/classes.dex bin/classes libs/*.jar
func (t *Target) Dex(classDir, output string, extraJars []string) (*CompiledCode, error) {
	var code *CompiledCode
	err := t.step(StepDex, func() error {
		if output == "" {
			output = t.tempFile("classes-", ".dex")
		}
		out, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		jars, err := collectJars(extraJars)
		if err != nil {
			return err
		}
		cmdline, err := t.dx.Run(tool.DxOptions{
			Files:  append([]string{classDir}, jars...),
			Output: proptools.StringPtr(out),
		})
		if err := t.ran(StepDex, cmdline, err); err != nil {
			return err
		}
		code = &CompiledCode{file{out}}
		return nil
	})
	return code, err
}

type ResourceOptions struct {
	Manifest    string
	ResourceDir string
	AssetDir    string
	// Configurations restricts the build to some resource configurations,
	// e.g. "de" or "port,land,en_US". All are included when nil.
	Configurations *string
	PackageName    *string
	VersionCode    *int64
	VersionName    *string
	// Output defaults to a unique temporary file.
	Output string
}

// PackResources packs all resources into a resource archive. Existing
// output is always overwritten.
//
//	aapt package -f -M AndroidManifest.xml -S res/ -A assets/ -I android.jar -F out.ap_
func (t *Target) PackResources(o ResourceOptions) (*PackagedResources, error) {
	var res *PackagedResources
	err := t.step(StepPackResources, func() error {
		output := o.Output
		if output == "" {
			output = t.tempFile("resources-", ".ap_")
		}
		out, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		opts := tool.AaptOptions{
			Command:               "package",
			Manifest:              proptools.StringPtr(o.Manifest),
			ResourceDir:           proptools.StringPtr(o.ResourceDir),
			Include:               []string{t.FrameworkLibrary},
			ApkOutput:             proptools.StringPtr(out),
			Configurations:        o.Configurations,
			RenameManifestPackage: o.PackageName,
			VersionCode:           o.VersionCode,
			VersionName:           o.VersionName,
			Overwrite:             proptools.BoolPtr(true),
		}
		if o.AssetDir != "" {
			opts.AssetDir = proptools.StringPtr(o.AssetDir)
		}
		cmdline, err := t.aapt.Run(opts)
		if err := t.ran(StepPackResources, cmdline, err); err != nil {
			return err
		}
		res = &PackagedResources{file{out}}
		return nil
	})
	return res, err
}

type ApkOptions struct {
	Code       Ref
	Resources  Ref
	JarPaths   []string
	NativeDirs []string
	SourceDirs []string
}

// BuildApk assembles an unsigned APK at output.
func (t *Target) BuildApk(output string, o ApkOptions) (*Package, error) {
	var pkg *Package
	err := t.step(StepBuildApk, func() error {
		out, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		opts := tool.ApkBuilderOptions{
			Output:     out,
			JarPaths:   o.JarPaths,
			NativeDirs: o.NativeDirs,
			SourceDirs: o.SourceDirs,
		}
		if o.Code != nil {
			opts.Dex = proptools.StringPtr(o.Code.Filename())
		}
		if o.Resources != nil {
			opts.Zips = []string{o.Resources.Filename()}
		}
		cmdline, err := t.apkBuilder.Run(opts)
		if err := t.ran(StepBuildApk, cmdline, err); err != nil {
			return err
		}
		pkg = &Package{file: file{out}, target: t}
		return nil
	})
	return pkg, err
}

// Sign signs pkg in place. The password is masked in the command line
// reported to the observer.
func (t *Target) Sign(pkg Ref, keystore, alias, password string) error {
	return t.step(StepSign, func() error {
		o := tool.JarSignerOptions{
			File:     pkg.Filename(),
			Keystore: keystore,
			Alias:    alias,
			Password: password,
		}
		_, err := t.jarSigner.Run(o)
		shown := tool.CommandLine(t.jarSigner.Executable(), t.jarSigner.Redacted(t.jarSigner.Args(o)))
		return t.ran(StepSign, shown, err)
	})
}

// Align runs zipalign on pkg. With an empty output the package is aligned in
// place and the same handle is returned; otherwise the aligned copy is
// written to output and returned as a new Package.
func (t *Target) Align(pkg Ref, output string) (*Package, error) {
	var aligned *Package
	err := t.step(StepAlign, func() error {
		in := pkg.Filename()
		if output != "" {
			out, err := filepath.Abs(output)
			if err != nil {
				return err
			}
			if err := t.alignFile(in, out); err != nil {
				return err
			}
			aligned = &Package{file: file{out}, target: t}
			return nil
		}

		info, err := os.Stat(in)
		if err != nil {
			return err
		}

		// zipalign cannot write over its input. Align into a sibling
		// temp file so the final rename stays on one filesystem.
		f, err := os.CreateTemp(filepath.Dir(in), filepath.Base(in)+".align-*")
		if err != nil {
			return err
		}
		tmp := f.Name()
		if err := f.Close(); err != nil {
			os.Remove(tmp)
			return err
		}
		if err := t.alignFile(in, tmp); err != nil {
			os.Remove(tmp)
			return err
		}
		// CreateTemp makes the file owner-only; the package keeps its mode.
		if err := os.Chmod(tmp, info.Mode().Perm()); err != nil {
			os.Remove(tmp)
			return err
		}
		t.obs.Note(StepAlign, "Renaming "+tmp+" to "+in)
		if err := os.Rename(tmp, in); err != nil {
			os.Remove(tmp)
			return err
		}
		if p, ok := pkg.(*Package); ok {
			aligned = p
		} else {
			aligned = &Package{file: file{in}, target: t}
		}
		return nil
	})
	return aligned, err
}

func (t *Target) alignFile(in, out string) error {
	cmdline, err := t.zipAlign.Run(tool.ZipAlignOptions{
		Input:  in,
		Output: out,
		Align:  4,
		Force:  proptools.BoolPtr(true),
	})
	return t.ran(StepAlign, cmdline, err)
}
