package tool

import (
	"strconv"

	"github.com/google/blueprint/proptools"
)

// AaptOptions configures one aapt invocation. Nil fields are left out of
// the command line.
type AaptOptions struct {
	// Command is the aapt verb, e.g. "package".
	Command string

	MakeDirs              *bool
	Manifest              *string
	ResourceDir           *string
	AssetDir              *string
	Include               []string
	ApkOutput             *string
	ROutput               *string
	Configurations        *string
	VersionCode           *int64
	VersionName           *string
	RenameManifestPackage *string
	Overwrite             *bool
}

// Aapt packages resources and generates R.java.
type Aapt struct {
	program
}

func NewAapt(exe string, r Runner) *Aapt {
	return &Aapt{newProgram(exe, r)}
}

func (a *Aapt) Args(o AaptOptions) []string {
	var args argList
	args.add(o.Command)
	args.addSwitch("-m", o.MakeDirs)
	args.addValue("-M", o.Manifest)
	args.addValue("-S", o.ResourceDir)
	args.addValue("-A", o.AssetDir)
	args.addEach("-I", o.Include)
	args.addValue("-F", o.ApkOutput)
	args.addValue("-J", o.ROutput)
	args.addValue("-c", o.Configurations)
	if o.VersionCode != nil {
		args.add("--version-code", strconv.Itoa(proptools.Int(o.VersionCode)))
	}
	args.addValue("--version-name", o.VersionName)
	args.addValue("--rename-manifest-package", o.RenameManifestPackage)
	args.addSwitch("-f", o.Overwrite)
	return args
}

func (a *Aapt) Run(o AaptOptions) (string, error) {
	return a.run(a.Args(o))
}
