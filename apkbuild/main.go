package main

import (
	"os"

	"gni.dev/apkbuild/apkbuild/internal/build"
)

func main() {
	os.Exit(build.Run(os.Args[1:], os.Stdout, os.Stderr))
}
