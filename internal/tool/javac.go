package tool

import (
	"os"
	"strings"
)

type JavacOptions struct {
	Files    []string
	DestDir  *string
	Encoding *string
	// Target is used for both -target and -source.
	Target        *string
	Classpath     []string
	Bootclasspath *string
	Debug         bool
}

// Javac is the Java compiler.
type Javac struct {
	program
}

func NewJavac(exe string, r Runner) *Javac {
	return &Javac{newProgram(exe, r)}
}

func (j *Javac) Args(o JavacOptions) []string {
	var args argList
	args.addValue("-encoding", o.Encoding)
	args.addValue("-target", o.Target)
	args.addValue("-source", o.Target)
	args.addValue("-d", o.DestDir)
	if len(o.Classpath) > 0 {
		args.add("-classpath", strings.Join(o.Classpath, string(os.PathListSeparator)))
	}
	args.addValue("-bootclasspath", o.Bootclasspath)
	if o.Debug {
		args.add("-g")
	} else {
		args.add("-g:none")
	}
	args.add(o.Files...)
	return args
}

func (j *Javac) Run(o JavacOptions) (string, error) {
	return j.run(j.Args(o))
}
