package tool

type LlvmRsOptions struct {
	Files []string
	// ResourceOutput receives the compiled bitcode, usually res/raw.
	ResourceOutput *string
	// SourceOutput receives the generated Java reflection classes.
	SourceOutput *string
	Include      []string
}

// LlvmRs is the renderscript compiler, llvm-rs-cc.
type LlvmRs struct {
	program
}

func NewLlvmRs(exe string, r Runner) *LlvmRs {
	return &LlvmRs{newProgram(exe, r)}
}

func (l *LlvmRs) Args(o LlvmRsOptions) []string {
	var args argList
	args.addEach("-I", o.Include)
	args.addValue("-o", o.ResourceOutput)
	args.addValue("-p", o.SourceOutput)
	args.add(o.Files...)
	return args
}

func (l *LlvmRs) Run(o LlvmRsOptions) (string, error) {
	return l.run(l.Args(o))
}
