package tool

// NdkBuild drives the NDK build scripts for one project directory.
type NdkBuild struct {
	program
}

func NewNdkBuild(exe string, r Runner) *NdkBuild {
	return &NdkBuild{newProgram(exe, r)}
}

func (n *NdkBuild) Args(projectDir string, clean bool) []string {
	var args argList
	args.add(projectDir)
	if clean {
		args.add("clean")
	}
	return args
}

func (n *NdkBuild) Build(projectDir string) (string, error) {
	return n.run(n.Args(projectDir, false))
}

func (n *NdkBuild) Clean(projectDir string) (string, error) {
	return n.run(n.Args(projectDir, true))
}
