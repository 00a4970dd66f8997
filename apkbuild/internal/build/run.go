package build

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/blueprint/proptools"

	"gni.dev/apkbuild/internal/config"
	"gni.dev/apkbuild/internal/events"
	"gni.dev/apkbuild/internal/metrics"
	"gni.dev/apkbuild/internal/platform"
	"gni.dev/apkbuild/internal/project"
	"gni.dev/apkbuild/internal/tool"
)

// Run builds the project and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	buildFlags := flag.NewFlagSet("apkbuild", flag.ContinueOnError)
	buildFlags.SetOutput(stderr)
	a := CreateArgs(buildFlags)
	if err := buildFlags.Parse(args); err != nil {
		return 1
	}
	if buildFlags.NArg() != 1 {
		fmt.Fprintln(stderr, "Builds the Android project in the current directory.")
		fmt.Fprintln(stderr, "Usage: apkbuild [flags] PATH_TO_SDK")
		buildFlags.PrintDefaults()
		return 1
	}

	console := events.NewConsole(stdout)
	console.Verbose = a.Verbose
	var obs events.Observer = console
	var rec *metrics.Recorder
	if a.Metrics != "" {
		rec = metrics.New()
		obs = events.Multi(console, rec)
	}

	err := build(buildFlags.Arg(0), a, obs, stdout)
	if rec != nil {
		if werr := rec.WriteFile(a.Metrics); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		report(stderr, err)
		return 1
	}
	return 0
}

func build(sdkDir string, a *Args, obs events.Observer, stdout io.Writer) error {
	ndkDir, err := findNDK(sdkDir, a.NDK)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}

	p, err := project.New(filepath.Join(a.Chdir, "AndroidManifest.xml"), project.Options{
		SDKDir:          sdkDir,
		NDKDir:          ndkDir,
		Target:          a.Target,
		PlatformOptions: []platform.Option{platform.WithObserver(obs)},
	})
	if err != nil {
		return err
	}
	p.ApplyConfig(cfg)
	if a.DebugBuild {
		p.Debug = true
	}

	if a.Clean {
		return p.Clean()
	}

	o := project.BuildOptionsFrom(cfg)
	o.Output = a.DestPath
	apk, err := p.Build(o)
	if err != nil {
		return err
	}

	keystore := proptools.StringDefault(cfg.Keystore, debugKeystore())
	if keystore != "" {
		fmt.Fprintln(stdout, "Signing with", keystore)
		alias := proptools.StringDefault(cfg.KeyAlias, debugKeyAlias)
		password := proptools.StringDefault(cfg.KeyPassword, debugKeyPassword)
		if err := apk.Sign(keystore, alias, password); err != nil {
			return err
		}
		if apk, err = apk.Align(""); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(stdout, "Note: Package will be unsigned!")
	}

	fmt.Fprintln(stdout, "Created:", apk.Filename())
	return nil
}

// loadConfig reads the -config file, or build.star in the project directory
// if there is one.
func loadConfig(a *Args) (*config.Project, error) {
	if a.Config != "" {
		return config.Load(a.Config)
	}
	cfg, err := config.Load(filepath.Join(a.Chdir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return &config.Project{}, nil
	}
	return cfg, err
}

func report(w io.Writer, err error) {
	var f *tool.Failure
	if !errors.As(err, &f) {
		fmt.Fprintln(w, "Build failed:", err)
		return
	}
	fmt.Fprintln(w, "Build failed, a tool returned an error.")
	fmt.Fprintln(w, "Command:", f.CommandLine)
	fmt.Fprintln(w, "Exit code:", f.ExitCode)
	fmt.Fprintln(w, "--- stdout ---")
	fmt.Fprintln(w, f.Stdout)
	fmt.Fprintln(w, "--- stderr ---")
	fmt.Fprintln(w, f.Stderr)
}
