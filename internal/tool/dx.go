package tool

type DxOptions struct {
	// Files are class files, directories or .jar/.zip/.apk archives.
	Files  []string
	Output *string
}

// Dx converts Java bytecode into a Dalvik classes.dex file.
type Dx struct {
	program
}

func NewDx(exe string, r Runner) *Dx {
	return &Dx{newProgram(exe, r)}
}

func (d *Dx) Args(o DxOptions) []string {
	var args argList
	args.add("--dex")
	args.addJoined("--output=", o.Output)
	args.add(o.Files...)
	return args
}

func (d *Dx) Run(o DxOptions) (string, error) {
	return d.run(d.Args(o))
}
