package build

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

const (
	debugKeyAlias    = "androiddebugkey"
	debugKeyPassword = "android"
)

// findNDK returns the NDK to use, or "" when there is none. Native builds
// are optional, so a missing NDK is not an error.
func findNDK(sdkDir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if ndkRoot := os.Getenv("ANDROID_NDK_ROOT"); ndkRoot != "" {
		return ndkRoot, nil
	}
	ndkRoot, err := findLast(filepath.Join(sdkDir, "ndk"))
	if err == nil {
		return ndkRoot, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	bundle := filepath.Join(sdkDir, "ndk-bundle")
	if st, err := os.Stat(bundle); err == nil && st.IsDir() {
		return bundle, nil
	}
	return "", nil
}

func findLast(path string) (string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer dir.Close()
	children, err := dir.Readdirnames(-1)
	if err != nil {
		return "", err
	}
	if len(children) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(children)
	return filepath.Join(path, children[len(children)-1]), nil
}

func debugKeystore() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	ks := filepath.Join(home, ".android", "debug.keystore")
	if _, err := os.Stat(ks); err != nil {
		return ""
	}
	return ks
}
