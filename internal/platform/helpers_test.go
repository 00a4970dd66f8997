package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gni.dev/apkbuild/internal/tool"
)

type call struct {
	tool string
	args []string
}

type fakeRunner struct {
	calls   []call
	failOn  string
	effects map[string]func(args []string) error
}

func (f *fakeRunner) Run(exe string, args []string) (string, error) {
	name := filepath.Base(exe)
	f.calls = append(f.calls, call{tool: name, args: args})
	cmdline := tool.CommandLine(exe, args)
	if name == f.failOn {
		return cmdline, &tool.Failure{CommandLine: cmdline, ExitCode: 1, Stderr: "error: foo"}
	}
	if fx := f.effects[name]; fx != nil {
		if err := fx(args); err != nil {
			return cmdline, err
		}
	}
	return cmdline, nil
}

func (f *fakeRunner) tools() []string {
	var names []string
	for _, c := range f.calls {
		names = append(names, c.tool)
	}
	return names
}

func newSDK(t *testing.T, platforms ...string) string {
	sdk := t.TempDir()
	for _, p := range platforms {
		require.NoError(t, os.MkdirAll(filepath.Join(sdk, "platforms", p), 0755))
	}
	return sdk
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTarget(t *testing.T, r tool.Runner, ndk string, opts ...Option) *Target {
	sdk := newSDK(t, "android-16")
	opts = append([]Option{WithRunner(r), WithTempDir(t.TempDir())}, opts...)
	target, err := Get(sdk, ndk, "", opts...)
	require.NoError(t, err)
	return target
}
