package tool

type program struct {
	exe    string
	runner Runner
}

func newProgram(exe string, r Runner) program {
	if r == nil {
		r = ExecRunner{}
	}
	return program{exe: exe, runner: r}
}

func (p program) Executable() string {
	return p.exe
}

func (p program) run(args argList) (string, error) {
	return p.runner.Run(p.exe, args)
}
