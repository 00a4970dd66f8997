package tool

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner starts one external program and waits for it to exit. It returns
// the command line that was executed.
type Runner interface {
	Run(exe string, args []string) (string, error)
}

// Failure is returned when a tool exits with a non-zero status.
type Failure struct {
	// Program is the executable that failed. The message returned by Error
	// names only the program, since CommandLine may hold secrets.
	Program     string
	CommandLine string
	ExitCode    int
	Stdout      string
	Stderr      string
}

func (f *Failure) Error() string {
	name := f.Program
	if name == "" {
		name, _, _ = strings.Cut(f.CommandLine, " ")
	}
	return fmt.Sprintf("%s: returned error code %d", name, f.ExitCode)
}

// ExecRunner runs tools as child processes of the current process.
type ExecRunner struct {
	// Dir is the working directory of the child. Empty means the current one.
	Dir string
}

func (r ExecRunner) Run(exe string, args []string) (string, error) {
	cmdline := CommandLine(exe, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(exe, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return cmdline, &Failure{
				Program:     exe,
				CommandLine: cmdline,
				ExitCode:    exitErr.ExitCode(),
				Stdout:      stdout.String(),
				Stderr:      stderr.String(),
			}
		}
		// The process never ran; report it the same way so callers
		// only deal with one failure shape.
		return cmdline, &Failure{
			Program:     exe,
			CommandLine: cmdline,
			ExitCode:    -1,
			Stdout:      stdout.String(),
			Stderr:      err.Error(),
		}
	}
	return cmdline, nil
}

func CommandLine(exe string, args []string) string {
	return strings.Join(append([]string{exe}, args...), " ")
}

// argList builds an argument list where optional values only appear when
// they are set.
type argList []string

func (a *argList) add(tokens ...string) {
	*a = append(*a, tokens...)
}

func (a *argList) addSwitch(flag string, on *bool) {
	if on != nil && *on {
		*a = append(*a, flag)
	}
}

func (a *argList) addValue(flag string, v *string) {
	if v != nil {
		*a = append(*a, flag, *v)
	}
}

func (a *argList) addJoined(prefix string, v *string) {
	if v != nil {
		*a = append(*a, prefix+*v)
	}
}

func (a *argList) addEach(flag string, values []string) {
	for _, v := range values {
		*a = append(*a, flag, v)
	}
}
