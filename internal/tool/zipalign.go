package tool

import "strconv"

type ZipAlignOptions struct {
	Input  string
	Output string
	Align  int
	Force  *bool
}

// ZipAlign aligns uncompressed archive entries on a byte boundary.
type ZipAlign struct {
	program
}

func NewZipAlign(exe string, r Runner) *ZipAlign {
	return &ZipAlign{newProgram(exe, r)}
}

func (z *ZipAlign) Args(o ZipAlignOptions) []string {
	var args argList
	args.addSwitch("-f", o.Force)
	args.add(strconv.Itoa(o.Align), o.Input, o.Output)
	return args
}

func (z *ZipAlign) Run(o ZipAlignOptions) (string, error) {
	return z.run(z.Args(o))
}
