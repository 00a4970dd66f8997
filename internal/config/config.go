// Package config loads per-project build settings from a build.star file.
//
// A build.star file is a Starlark program; the settings are the global
// variables it defines:
//
//	extra_source_dirs = ["../shared/src"]
//	extra_jars = ["../support/android-support-v4.jar"]
//	java_target = "1.6"
//	debug = True
//	configurations = "en,de"
//	version_code = 12
//	keystore = "release.keystore"
//	key_password = getenv("KEY_PASSWORD")
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
)

// FileName is the name of the configuration file in a project directory.
const FileName = "build.star"

type Project struct {
	ExtraSourceDirs []string
	ExtraJars       []string
	JavaTarget      string
	Encoding        string
	Debug           *bool

	Configurations *string
	PackageName    *string
	VersionCode    *int64
	VersionName    *string

	Keystore    *string
	KeyAlias    *string
	KeyPassword *string
}

// Load executes the build.star file at path. Relative directories and files
// in the result are resolved against the directory of path.
func Load(path string) (*Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(path, src)
	if err != nil {
		return nil, err
	}
	p.resolve(filepath.Dir(path))
	return p, nil
}

// Parse executes a build.star program given as source.
func Parse(filename string, src []byte) (*Project, error) {
	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(os.Stderr, msg) },
	}
	predeclared := starlark.StringDict{
		"getenv": starlark.NewBuiltin("getenv", getenv),
	}
	globals, err := starlark.ExecFile(thread, filename, src, predeclared)
	if err != nil {
		return nil, err
	}

	var p Project
	for name, v := range globals {
		if err := p.set(name, v); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, name, err)
		}
	}
	return &p, nil
}

func (p *Project) set(name string, v starlark.Value) error {
	var err error
	switch name {
	case "extra_source_dirs":
		p.ExtraSourceDirs, err = stringList(v)
	case "extra_jars":
		p.ExtraJars, err = stringList(v)
	case "java_target":
		p.JavaTarget, err = toString(v)
	case "encoding":
		p.Encoding, err = toString(v)
	case "debug":
		p.Debug, err = boolPtr(v)
	case "configurations":
		p.Configurations, err = stringPtr(v)
	case "package_name":
		p.PackageName, err = stringPtr(v)
	case "version_code":
		p.VersionCode, err = int64Ptr(v)
	case "version_name":
		p.VersionName, err = stringPtr(v)
	case "keystore":
		p.Keystore, err = stringPtr(v)
	case "key_alias":
		p.KeyAlias, err = stringPtr(v)
	case "key_password":
		p.KeyPassword, err = stringPtr(v)
	}
	return err
}

func (p *Project) resolve(dir string) {
	abs := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	for i, d := range p.ExtraSourceDirs {
		p.ExtraSourceDirs[i] = abs(d)
	}
	for i, j := range p.ExtraJars {
		p.ExtraJars[i] = abs(j)
	}
	if p.Keystore != nil {
		ks := abs(*p.Keystore)
		p.Keystore = &ks
	}
}

func getenv(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, def string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "default?", &def); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(name); ok {
		return starlark.String(v), nil
	}
	return starlark.String(def), nil
}

func toString(v starlark.Value) (string, error) {
	s, ok := v.(starlark.String)
	if !ok {
		return "", fmt.Errorf("got %s, want string", v.Type())
	}
	return string(s), nil
}

func stringPtr(v starlark.Value) (*string, error) {
	if v == starlark.None {
		return nil, nil
	}
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func boolPtr(v starlark.Value) (*bool, error) {
	if v == starlark.None {
		return nil, nil
	}
	b, ok := v.(starlark.Bool)
	if !ok {
		return nil, fmt.Errorf("got %s, want bool", v.Type())
	}
	r := bool(b)
	return &r, nil
}

func int64Ptr(v starlark.Value) (*int64, error) {
	if v == starlark.None {
		return nil, nil
	}
	i, ok := v.(starlark.Int)
	if !ok {
		return nil, fmt.Errorf("got %s, want int", v.Type())
	}
	n, ok := i.Int64()
	if !ok {
		return nil, fmt.Errorf("%s does not fit in int64", i)
	}
	return &n, nil
}

func stringList(v starlark.Value) ([]string, error) {
	switch v.(type) {
	case *starlark.List, starlark.Tuple:
	default:
		return nil, fmt.Errorf("got %s, want list of strings", v.Type())
	}
	iter := v.(starlark.Iterable).Iterate()
	defer iter.Done()

	var list []string
	var x starlark.Value
	for iter.Next(&x) {
		s, err := toString(x)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}
