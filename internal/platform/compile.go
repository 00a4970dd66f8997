package platform

import (
	"os"
)

type CompileOptions struct {
	Manifest    string
	ProjectDir  string
	SourceDirs  []string
	ResourceDir string

	// SourceGenDir and ClassGenDir receive generated sources and class
	// files. When empty, temporary directories are used and removed
	// before Compile returns.
	SourceGenDir string
	ClassGenDir  string

	// DexOutput defaults to a unique temporary file.
	DexOutput string
	ExtraJars []string

	Debug      bool
	JavaTarget string
	Encoding   string
}

// Compile runs everything up to and including dexing: native code (when an
// NDK is configured), renderscript, aidl, R.java, javac and dx.
func (t *Target) Compile(o CompileOptions) (code *CompiledCode, err error) {
	t.obs.StepStarted(StepCompile)
	defer func() { t.obs.StepFinished(StepCompile, err) }()

	var toDelete []string
	defer func() {
		for _, dir := range toDelete {
			t.obs.Note(StepCompile, "Deleting tree: "+dir)
			if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
				code, err = nil, rmErr
			}
		}
	}()

	sourceGenDir := o.SourceGenDir
	if sourceGenDir == "" {
		if sourceGenDir, err = os.MkdirTemp(t.tempDir, "gen-"); err != nil {
			return nil, err
		}
		toDelete = append(toDelete, sourceGenDir)
	}
	classGenDir := o.ClassGenDir
	if classGenDir == "" {
		if classGenDir, err = os.MkdirTemp(t.tempDir, "classes-"); err != nil {
			return nil, err
		}
		toDelete = append(toDelete, classGenDir)
	}

	if t.HasNative() {
		if err := t.CompileNative(o.ProjectDir); err != nil {
			return nil, err
		}
	}
	if err := t.CompileRenderscript(o.ResourceDir, sourceGenDir, o.SourceDirs); err != nil {
		return nil, err
	}
	if err := t.CompileAidl(o.SourceDirs, sourceGenDir); err != nil {
		return nil, err
	}
	if err := t.GenerateR(o.Manifest, o.ResourceDir, sourceGenDir); err != nil {
		return nil, err
	}
	err = t.CompileJava(JavaOptions{
		SourceDirs: append(append([]string(nil), o.SourceDirs...), sourceGenDir),
		OutputDir:  classGenDir,
		ExtraJars:  o.ExtraJars,
		Debug:      o.Debug,
		Target:     o.JavaTarget,
		Encoding:   o.Encoding,
	})
	if err != nil {
		return nil, err
	}
	return t.Dex(classGenDir, o.DexOutput, o.ExtraJars)
}
