// Package platform knows how to build against one platform version of the
// Android SDK.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"gni.dev/apkbuild/internal/events"
	"gni.dev/apkbuild/internal/tool"
)

var (
	ErrConfig            = errors.New("invalid build configuration")
	ErrTargetNotFound    = fmt.Errorf("%w: target not found", ErrConfig)
	ErrNativeUnsupported = errors.New("native builds need an NDK")
)

// Names of the tools a Target resolves, also the keys accepted by WithPaths.
const (
	Aapt       = "aapt"
	Aidl       = "aidl"
	LlvmRs     = "llvm-rs-cc"
	Dx         = "dx"
	ApkBuilder = "apkbuilder"
	ZipAlign   = "zipalign"
	JarSigner  = "jarsigner"
	Javac      = "javac"
	NdkBuild   = "ndk-build"
)

type settings struct {
	paths   map[string]string
	runner  tool.Runner
	obs     events.Observer
	goos    string
	tempDir string
}

type Option func(*settings)

// WithPaths overrides the location of individual tools.
func WithPaths(paths map[string]string) Option {
	return func(s *settings) {
		for k, v := range paths {
			s.paths[k] = v
		}
	}
}

func WithRunner(r tool.Runner) Option {
	return func(s *settings) { s.runner = r }
}

func WithObserver(o events.Observer) Option {
	return func(s *settings) { s.obs = o }
}

// WithOS selects the host operating system the tool names are resolved for.
func WithOS(goos string) Option {
	return func(s *settings) { s.goos = goos }
}

// WithTempDir sets where temporary build directories and files are created.
func WithTempDir(dir string) Option {
	return func(s *settings) { s.tempDir = dir }
}

// Target represents a specific platform version of the SDK. It is
// immutable once created.
type Target struct {
	Version     string
	SDKDir      string
	NDKDir      string
	PlatformDir string

	FrameworkLibrary string
	FrameworkAidl    string
	RSIncludes       []string

	paths   map[string]string
	obs     events.Observer
	tempDir string

	aapt       *tool.Aapt
	aidl       *tool.Aidl
	llvmRs     *tool.LlvmRs
	dx         *tool.Dx
	apkBuilder *tool.ApkBuilder
	zipAlign   *tool.ZipAlign
	jarSigner  *tool.JarSigner
	javac      *tool.Javac
	ndkBuild   *tool.NdkBuild
}

// New binds the tools and framework files of the platform found in
// platformDir. ndkDir may be empty, in which case native builds are
// unavailable.
func New(version, sdkDir, ndkDir, platformDir string, opts ...Option) (*Target, error) {
	s := settings{
		paths: map[string]string{},
		obs:   events.Nop,
		goos:  runtime.GOOS,
	}
	for _, o := range opts {
		o(&s)
	}

	if st, err := os.Stat(platformDir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: platform directory %s does not exist", ErrConfig, platformDir)
	}

	paths := defaultPaths(s.goos, sdkDir, ndkDir)
	for name, p := range s.paths {
		if _, ok := paths[name]; !ok {
			if name == NdkBuild {
				return nil, fmt.Errorf("%w: %s path given without an NDK", ErrConfig, name)
			}
			return nil, fmt.Errorf("%w: unknown tool %q", ErrConfig, name)
		}
		if p == "" {
			return nil, fmt.Errorf("%w: empty path for tool %q", ErrConfig, name)
		}
		paths[name] = p
	}

	t := &Target{
		Version:          version,
		SDKDir:           sdkDir,
		NDKDir:           ndkDir,
		PlatformDir:      platformDir,
		FrameworkLibrary: filepath.Join(platformDir, "android.jar"),
		FrameworkAidl:    filepath.Join(platformDir, "framework.aidl"),
		RSIncludes: []string{
			filepath.Join(sdkDir, "platform-tools", "renderscript", "include"),
			filepath.Join(sdkDir, "platform-tools", "renderscript", "clang-include"),
		},
		paths:   paths,
		obs:     s.obs,
		tempDir: s.tempDir,

		aapt:       tool.NewAapt(paths[Aapt], s.runner),
		aidl:       tool.NewAidl(paths[Aidl], s.runner),
		llvmRs:     tool.NewLlvmRs(paths[LlvmRs], s.runner),
		dx:         tool.NewDx(paths[Dx], s.runner),
		apkBuilder: tool.NewApkBuilder(paths[ApkBuilder], s.runner),
		zipAlign:   tool.NewZipAlign(paths[ZipAlign], s.runner),
		jarSigner:  tool.NewJarSigner(paths[JarSigner], s.runner),
		javac:      tool.NewJavac(paths[Javac], s.runner),
	}
	if ndkDir != "" {
		t.ndkBuild = tool.NewNdkBuild(paths[NdkBuild], s.runner)
	}
	return t, nil
}

func (t *Target) String() string {
	return fmt.Sprintf("Platform %s <%s>", t.Version, t.PlatformDir)
}

// ToolPath returns the resolved location of the named tool, or "" if the
// target has no such tool.
func (t *Target) ToolPath(name string) string {
	return t.paths[name]
}

func (t *Target) HasNative() bool {
	return t.ndkBuild != nil
}

// ToolNames lists the tools this target resolved, sorted.
func (t *Target) ToolNames() []string {
	names := make([]string, 0, len(t.paths))
	for n := range t.paths {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func defaultPaths(goos, sdkDir, ndkDir string) map[string]string {
	exe := func(dir, name, winExt string) string {
		if goos == "windows" {
			name += winExt
		}
		return filepath.Join(dir, name)
	}
	platformTools := filepath.Join(sdkDir, "platform-tools")
	tools := filepath.Join(sdkDir, "tools")

	paths := map[string]string{
		Aapt:       exe(platformTools, Aapt, ".exe"),
		Aidl:       exe(platformTools, Aidl, ".exe"),
		LlvmRs:     exe(platformTools, LlvmRs, ".exe"),
		Dx:         exe(platformTools, Dx, ".bat"),
		ApkBuilder: exe(tools, ApkBuilder, ".bat"),
		ZipAlign:   exe(tools, ZipAlign, ".exe"),
		JarSigner:  javaTool(goos, JarSigner),
		Javac:      javaTool(goos, Javac),
	}
	if ndkDir != "" {
		paths[NdkBuild] = exe(ndkDir, NdkBuild, ".bat")
	}
	return paths
}

// javaTool prefers the JDK pointed to by JAVA_HOME and falls back to a bare
// command name looked up on PATH.
func javaTool(goos, name string) string {
	javaHome := os.Getenv("JAVA_HOME")
	if javaHome == "" {
		return name
	}
	if goos == "windows" {
		name += ".exe"
	}
	return filepath.Join(javaHome, "bin", name)
}
