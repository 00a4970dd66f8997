package build

import (
	"flag"
)

type Args struct {
	Chdir      string
	DestPath   string
	DebugBuild bool
	Target     string
	NDK        string
	Config     string
	Metrics    string
	Clean      bool
	Verbose    bool
}

func CreateArgs(f *flag.FlagSet) *Args {
	var args Args
	f.StringVar(&args.Chdir, "C", ".", "project directory containing AndroidManifest.xml")
	f.StringVar(&args.DestPath, "o", "", "output path of the APK")
	f.BoolVar(&args.DebugBuild, "debug", false, "compile with debug information")
	f.StringVar(&args.Target, "target", "", "platform version to build against")
	f.StringVar(&args.NDK, "ndk", "", "NDK root for native code")
	f.StringVar(&args.Config, "config", "", "build.star file (default <project>/build.star)")
	f.StringVar(&args.Metrics, "metrics", "", "write build metrics to this file")
	f.BoolVar(&args.Clean, "clean", false, "delete generated files instead of building")
	f.BoolVar(&args.Verbose, "v", false, "report the start and end of every step")
	return &args
}
