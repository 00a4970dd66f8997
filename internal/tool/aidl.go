package tool

// AidlOptions configures the compilation of a single .aidl file.
type AidlOptions struct {
	File         string
	Preprocessed *string
	SearchPath   []string
	OutputDir    *string
}

// Aidl compiles interface definitions into Java sources.
type Aidl struct {
	program
}

func NewAidl(exe string, r Runner) *Aidl {
	return &Aidl{newProgram(exe, r)}
}

// Args returns the aidl arguments. aidl wants option values glued to their
// flag ("-ogen/"), not as separate tokens.
func (a *Aidl) Args(o AidlOptions) []string {
	var args argList
	args.addJoined("-p", o.Preprocessed)
	for i := range o.SearchPath {
		args.addJoined("-I", &o.SearchPath[i])
	}
	args.addJoined("-o", o.OutputDir)
	args.add(o.File)
	return args
}

func (a *Aidl) Run(o AidlOptions) (string, error) {
	return a.run(a.Args(o))
}
