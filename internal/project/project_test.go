package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/blueprint/proptools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gni.dev/apkbuild/internal/config"
	"gni.dev/apkbuild/internal/platform"
	"gni.dev/apkbuild/internal/tool"
)

type fakeRunner struct {
	calls  map[string][][]string
	order  []string
	failOn string
}

func (f *fakeRunner) Run(exe string, args []string) (string, error) {
	name := filepath.Base(exe)
	if f.calls == nil {
		f.calls = map[string][][]string{}
	}
	f.calls[name] = append(f.calls[name], args)
	f.order = append(f.order, name)
	cmdline := tool.CommandLine(exe, args)
	if name == f.failOn {
		return cmdline, &tool.Failure{CommandLine: cmdline, ExitCode: 1}
	}
	return cmdline, nil
}

const testManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
	package="com.example.hello"
	android:versionCode="3"
	android:versionName="1.0.2">
	<uses-sdk android:minSdkVersion="8" android:targetSdkVersion="%s" />
	<application android:label="Hello" />
</manifest>`

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newSDK(t *testing.T, platforms ...string) string {
	sdk := t.TempDir()
	for _, p := range platforms {
		require.NoError(t, os.MkdirAll(filepath.Join(sdk, "platforms", p), 0755))
	}
	return sdk
}

func newProjectDir(t *testing.T, targetSDK string) string {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "AndroidManifest.xml"), strings.Replace(testManifest, "%s", targetSDK, 1))
	writeFile(t, filepath.Join(dir, "src", "com", "example", "hello", "Hello.java"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "res", "values"), 0755))
	return dir
}

func newProject(t *testing.T, r tool.Runner, ndk string) *Project {
	dir := newProjectDir(t, "16")
	p, err := New(filepath.Join(dir, "AndroidManifest.xml"), Options{
		SDKDir:          newSDK(t, "android-16"),
		NDKDir:          ndk,
		PlatformOptions: []platform.Option{platform.WithRunner(r), platform.WithTempDir(t.TempDir())},
	})
	require.NoError(t, err)
	return p
}

func TestReadManifest(t *testing.T) {
	dir := newProjectDir(t, "10")
	m, err := ReadManifest(filepath.Join(dir, "AndroidManifest.xml"))
	require.NoError(t, err)
	assert.Equal(t, "com.example.hello", m.Package)
	assert.Equal(t, 3, m.VersionCode)
	assert.Equal(t, "1.0.2", m.VersionName)
	assert.Equal(t, "8", m.Android.MinSDK)
	assert.Equal(t, "10", m.Android.TargetSDK)
}

func TestReadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadManifest(filepath.Join(dir, "AndroidManifest.xml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.xml")
	writeFile(t, bad, `<manifest xmlns:android="http://schemas.android.com/apk/res/android" android:versionCode="x"/>`)
	_, err = ReadManifest(bad)
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	l, err := NewLayout("/work/app/AndroidManifest.xml")
	require.NoError(t, err)
	assert.Equal(t, Layout{
		Manifest:    "/work/app/AndroidManifest.xml",
		ProjectDir:  "/work/app",
		SourceDir:   "/work/app/src",
		ResourceDir: "/work/app/res",
		GenDir:      "/work/app/gen",
		OutDir:      "/work/app/bin",
		ClassDir:    "/work/app/bin/classes",
		AssetDir:    "/work/app/assets",
		LibDir:      "/work/app/libs",
	}, l)
}

func TestNewPlatformFromManifest(t *testing.T) {
	sdk := newSDK(t, "android-10", "android-16")

	dir := newProjectDir(t, "10")
	p, err := New(filepath.Join(dir, "AndroidManifest.xml"), Options{SDKDir: sdk})
	require.NoError(t, err)
	assert.Equal(t, "10", p.Platform.Version)
	assert.Equal(t, "com.example.hello", p.Name)

	dir = newProjectDir(t, "")
	p, err = New(filepath.Join(dir, "AndroidManifest.xml"), Options{SDKDir: sdk, Name: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "16", p.Platform.Version)
	assert.Equal(t, "Hello", p.Name)

	p, err = New(filepath.Join(dir, "AndroidManifest.xml"), Options{SDKDir: sdk, Target: "10"})
	require.NoError(t, err)
	assert.Equal(t, "10", p.Platform.Version)
}

func TestNewErrors(t *testing.T) {
	dir := newProjectDir(t, "42")
	manifest := filepath.Join(dir, "AndroidManifest.xml")

	_, err := New(manifest, Options{})
	assert.True(t, errors.Is(err, ErrNoPlatform))
	assert.True(t, errors.Is(err, platform.ErrConfig))

	_, err = New(manifest, Options{SDKDir: newSDK(t, "android-16")})
	assert.True(t, errors.Is(err, platform.ErrTargetNotFound))
}

func TestBuild(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")
	l := p.Layout
	writeFile(t, filepath.Join(l.LibDir, "support.jar"), "")
	writeFile(t, filepath.Join(l.AssetDir, "data.txt"), "")

	apk, err := p.Build(BuildOptions{Config: proptools.StringPtr("de")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(l.OutDir, "com.example.hello.apk"), apk.Filename())
	assert.Equal(t, []string{"aapt", "javac", "dx", "aapt", "apkbuilder"}, r.order)

	resources := filepath.Join(l.OutDir, "com.example.hello.de.ap_")
	pack := strings.Join(r.calls["aapt"][1], " ")
	assert.Contains(t, pack, "-F "+resources)
	assert.Contains(t, pack, "-A "+l.AssetDir)
	assert.Contains(t, pack, "-c de")

	assert.Equal(t, []string{
		apk.Filename(), "-u",
		"-f", filepath.Join(l.OutDir, "classes.dex"),
		"-z", resources,
		"-rf", l.SourceDir,
		"-rj", l.LibDir,
		"-nf", l.LibDir,
	}, r.calls["apkbuilder"][0])

	javac := r.calls["javac"][0]
	assert.Contains(t, javac, filepath.Join(l.LibDir, "support.jar"))
	assert.Contains(t, javac, l.ClassDir)
}

func TestBuildReusesCode(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")

	_, err := p.Build(BuildOptions{})
	require.NoError(t, err)
	_, err = p.Build(BuildOptions{Output: filepath.Join(t.TempDir(), "other.apk")})
	require.NoError(t, err)

	assert.Len(t, r.calls["javac"], 1)
	assert.Len(t, r.calls["dx"], 1)
	assert.Len(t, r.calls["apkbuilder"], 2)
	assert.NotNil(t, p.Code())
}

func TestBuildWithoutOptionalDirs(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")

	_, err := p.Build(BuildOptions{
		PackageName: proptools.StringPtr("com.example.beta"),
		VersionCode: proptools.Int64Ptr(9),
	})
	require.NoError(t, err)

	pack := r.calls["aapt"][1]
	assert.NotContains(t, pack, "-A")
	assert.NotContains(t, pack, "-c")
	assert.Contains(t, pack, filepath.Join(p.Layout.OutDir, "com.example.hello.ap_"))
	joined := strings.Join(pack, " ")
	assert.Contains(t, joined, "--version-code 9")
	assert.Contains(t, joined, "--rename-manifest-package com.example.beta")

	builder := r.calls["apkbuilder"][0]
	assert.NotContains(t, builder, "-rj")
	assert.NotContains(t, builder, "-nf")
	assert.Contains(t, builder, "-rf")
}

func TestBuildEmptyConfig(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")

	_, err := p.Build(BuildOptions{Config: proptools.StringPtr("")})
	require.NoError(t, err)

	pack := r.calls["aapt"][1]
	assert.NotContains(t, pack, "-c")
	assert.NotContains(t, pack, "")
	assert.Contains(t, pack, filepath.Join(p.Layout.OutDir, "com.example.hello.ap_"))
}

func TestBuildMissingExtraJar(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")
	missing := filepath.Join(t.TempDir(), "missing", "support.jar")
	existing := filepath.Join(t.TempDir(), "annotations.jar")
	writeFile(t, existing, "")
	p.ExtraJars = []string{missing, existing}

	_, err := p.Build(BuildOptions{})
	require.NoError(t, err)

	javac := strings.Join(r.calls["javac"][0], " ")
	assert.Contains(t, javac, missing)
	assert.Contains(t, javac, existing)
	assert.Contains(t, r.calls["dx"][0], missing)

	builder := r.calls["apkbuilder"][0]
	assert.NotContains(t, builder, missing)
	assert.Contains(t, builder, existing)
}

func TestBuildStopsOnFailure(t *testing.T) {
	r := &fakeRunner{failOn: "javac"}
	p := newProject(t, r, "")

	apk, err := p.Build(BuildOptions{})
	assert.Nil(t, apk)
	var f *tool.Failure
	assert.True(t, errors.As(err, &f))
	assert.Nil(t, p.Code())
	assert.Equal(t, []string{"aapt", "javac"}, r.order)
}

func TestClean(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "/ndk")
	require.NoError(t, os.MkdirAll(p.Layout.ClassDir, 0755))
	require.NoError(t, os.MkdirAll(p.Layout.GenDir, 0755))

	require.NoError(t, p.Clean())
	assert.NoDirExists(t, p.Layout.OutDir)
	assert.NoDirExists(t, p.Layout.GenDir)
	assert.DirExists(t, p.Layout.SourceDir)

	require.NoError(t, p.Clean())
	assert.Equal(t, [][]string{
		{p.Layout.ProjectDir, "clean"},
		{p.Layout.ProjectDir, "clean"},
	}, r.calls["ndk-build"])
}

func TestCleanWithoutNDK(t *testing.T) {
	r := &fakeRunner{}
	p := newProject(t, r, "")
	require.NoError(t, p.Clean())
	assert.Empty(t, r.order)
}

func TestApplyConfig(t *testing.T) {
	p := newProject(t, &fakeRunner{}, "")
	p.ApplyConfig(&config.Project{
		ExtraSourceDirs: []string{"/shared/src"},
		ExtraJars:       []string{"/support/v4.jar"},
		JavaTarget:      "1.6",
		Debug:           proptools.BoolPtr(true),
	})
	assert.Equal(t, []string{"/shared/src"}, p.ExtraSourceDirs)
	assert.Equal(t, []string{"/support/v4.jar"}, p.ExtraJars)
	assert.Equal(t, "1.6", p.JavaTarget)
	assert.True(t, p.Debug)
	assert.Equal(t, "", p.Encoding)

	o := BuildOptionsFrom(&config.Project{VersionName: proptools.StringPtr("2.0")})
	assert.Equal(t, "2.0", *o.VersionName)
	assert.Nil(t, o.Config)
}
