package tool

type JarSignerOptions struct {
	File     string
	Keystore string
	Alias    string
	Password string
}

// JarSigner signs a jar or APK in place.
type JarSigner struct {
	program
}

func NewJarSigner(exe string, r Runner) *JarSigner {
	return &JarSigner{newProgram(exe, r)}
}

func (s *JarSigner) Args(o JarSignerOptions) []string {
	var args argList
	args.add("-keystore", o.Keystore)
	args.add("-storepass", o.Password)
	args.add(o.File, o.Alias)
	return args
}

// Redacted returns a copy of args with the keystore password masked.
func (s *JarSigner) Redacted(args []string) []string {
	masked := append([]string(nil), args...)
	for i := 0; i+1 < len(masked); i++ {
		if masked[i] == "-storepass" {
			masked[i+1] = "****"
			i++
		}
	}
	return masked
}

func (s *JarSigner) Run(o JarSignerOptions) (string, error) {
	return s.run(s.Args(o))
}
