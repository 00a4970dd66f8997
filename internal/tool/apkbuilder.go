package tool

type ApkBuilderOptions struct {
	Output string
	// Dex is the code of the app; optional for resource-only packages.
	Dex        *string
	Zips       []string
	SourceDirs []string
	JarPaths   []string
	NativeDirs []string
}

// ApkBuilder assembles an unsigned APK.
type ApkBuilder struct {
	program
}

func NewApkBuilder(exe string, r Runner) *ApkBuilder {
	return &ApkBuilder{newProgram(exe, r)}
}

func (b *ApkBuilder) Args(o ApkBuilderOptions) []string {
	var args argList
	args.add(o.Output, "-u")
	args.addValue("-f", o.Dex)
	args.addEach("-z", o.Zips)
	args.addEach("-rf", o.SourceDirs)
	args.addEach("-rj", o.JarPaths)
	args.addEach("-nf", o.NativeDirs)
	return args
}

func (b *ApkBuilder) Run(o ApkBuilderOptions) (string, error) {
	return b.run(b.Args(o))
}
